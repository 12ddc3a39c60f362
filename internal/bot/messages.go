package bot

import (
	"github.com/raine/watch-appraiser/internal/analysis"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Message keys are the English texts. Other languages are registered in
// translations below; anything missing falls back to English.

// =============================================================================
// General messages
// =============================================================================

const (
	MsgWelcome = `👋 Send me a photo of a watch and I will identify it, check it for signs of a replica and estimate its market value.

Commands:
/lang <code> - reply language (en, es, fr, ar, zh)
/currency <code> - currency for values
/history - your recent analyses
/help - show this message`
	MsgSendPhoto       = "Please send a photo of a watch."
	MsgUnknownCommand  = "Unknown command. Send /help for the list of commands."
	MsgAnalyzing       = "🔍 Analyzing your watch..."
	MsgDownloadFailed  = "Failed to download the photo. Please send it again."
	MsgLanguageSet     = "Language set to *%s*."
	MsgLanguageUsage   = "Usage: `/lang <code>`\nSupported: %s"
	MsgCurrencySet     = "Values will be shown in *%s*."
	MsgCurrencyUsage   = "Usage: `/currency <code>`\nSupported: %s"
	MsgHistoryEmpty    = "No saved analyses yet. Send a photo to start."
	MsgHistoryHeader   = "*Recent analyses* (%d in total)"
	MsgHistoryFailed   = "Failed to load your history. Please try again later."
	MsgHistoryUnknown  = "Unidentified watch"
	MsgUnsupportedFile = "Only image files can be analyzed."
)

// =============================================================================
// Report labels
// =============================================================================

const (
	LblIdentified      = "Identified watch"
	LblReference       = "Reference"
	LblConfidence      = "Identification confidence"
	LblEstimatedValue  = "Estimated value"
	LblAuthenticity    = "Authenticity"
	LblLikelyAuthentic = "Likely authentic"
	LblNotAuthentic    = "Possible replica"
	LblRedFlags        = "Red flags"
	LblIndicators      = "Authenticity indicators"
	LblMaterial        = "Material"
	LblMovement        = "Movement"
	LblYear            = "Year"
	LblCondition       = "Condition"
	LblFeatures        = "Notable features"
	LblNotes           = "Notes"
	LblNoWatch         = "No watch could be identified in this photo. Try a closer, well-lit shot of the dial."
)

// =============================================================================
// Analysis errors
// =============================================================================

const (
	MsgErrEmptyInput   = "No image provided."
	MsgErrImageRead    = "Failed to read the image. Please try taking the photo again."
	MsgErrParse        = "The AI service returned an invalid response. Please try again."
	MsgErrRateLimited  = "Service is temporarily busy. Please try again in a few moments."
	MsgErrTimeout      = "Analysis took too long. Please try again with a clearer image."
	MsgErrNetwork      = "Network error. Please check your connection and try again."
	MsgErrEmptyResult  = "AI service returned empty result."
	MsgErrCanceled     = "Analysis was canceled."
	MsgErrUnclassified = "Analysis failed. Please try again."
)

var translations = map[string]map[language.Tag]string{
	MsgWelcome: {
		language.Spanish: `👋 Envíame una foto de un reloj y lo identificaré, buscaré señales de réplica y estimaré su valor de mercado.

Comandos:
/lang <código> - idioma de respuesta (en, es, fr, ar, zh)
/currency <código> - moneda de los valores
/history - tus análisis recientes
/help - mostrar este mensaje`,
		language.French: `👋 Envoyez-moi la photo d'une montre : je l'identifierai, chercherai des signes de contrefaçon et estimerai sa valeur.

Commandes :
/lang <code> - langue des réponses (en, es, fr, ar, zh)
/currency <code> - devise des valeurs
/history - vos analyses récentes
/help - afficher ce message`,
		language.Arabic: `👋 أرسل لي صورة ساعة وسأتعرف عليها وأبحث عن علامات التقليد وأقدّر قيمتها السوقية.

الأوامر:
/lang <code> - لغة الرد (en, es, fr, ar, zh)
/currency <code> - عملة القيم
/history - تحليلاتك الأخيرة
/help - عرض هذه الرسالة`,
		language.Chinese: `👋 发送一张手表照片，我会识别型号、检查仿品迹象并估算市场价值。

命令：
/lang <code> - 回复语言 (en, es, fr, ar, zh)
/currency <code> - 估值货币
/history - 最近的分析记录
/help - 显示此帮助`,
	},
	MsgSendPhoto: {
		language.Spanish: "Envía una foto de un reloj.",
		language.French:  "Envoyez la photo d'une montre.",
		language.Arabic:  "يرجى إرسال صورة ساعة.",
		language.Chinese: "请发送一张手表照片。",
	},
	MsgUnknownCommand: {
		language.Spanish: "Comando desconocido. Envía /help para ver la lista de comandos.",
		language.French:  "Commande inconnue. Envoyez /help pour la liste des commandes.",
		language.Arabic:  "أمر غير معروف. أرسل /help لعرض قائمة الأوامر.",
		language.Chinese: "未知命令。发送 /help 查看命令列表。",
	},
	MsgAnalyzing: {
		language.Spanish: "🔍 Analizando tu reloj...",
		language.French:  "🔍 Analyse de votre montre...",
		language.Arabic:  "🔍 جارٍ تحليل ساعتك...",
		language.Chinese: "🔍 正在分析您的手表...",
	},
	MsgDownloadFailed: {
		language.Spanish: "No se pudo descargar la foto. Envíala de nuevo.",
		language.French:  "Impossible de télécharger la photo. Veuillez la renvoyer.",
		language.Arabic:  "تعذر تنزيل الصورة. يرجى إرسالها مرة أخرى.",
		language.Chinese: "照片下载失败，请重新发送。",
	},
	MsgLanguageSet: {
		language.Spanish: "Idioma configurado: *%s*.",
		language.French:  "Langue définie : *%s*.",
		language.Arabic:  "تم ضبط اللغة: *%s*.",
		language.Chinese: "语言已设置为 *%s*。",
	},
	MsgLanguageUsage: {
		language.Spanish: "Uso: `/lang <código>`\nDisponibles: %s",
		language.French:  "Utilisation : `/lang <code>`\nDisponibles : %s",
		language.Arabic:  "الاستخدام: `/lang <code>`\nالمتاح: %s",
		language.Chinese: "用法：`/lang <code>`\n支持：%s",
	},
	MsgCurrencySet: {
		language.Spanish: "Los valores se mostrarán en *%s*.",
		language.French:  "Les valeurs seront affichées en *%s*.",
		language.Arabic:  "ستُعرض القيم بعملة *%s*.",
		language.Chinese: "估值将以 *%s* 显示。",
	},
	MsgCurrencyUsage: {
		language.Spanish: "Uso: `/currency <código>`\nDisponibles: %s",
		language.French:  "Utilisation : `/currency <code>`\nDisponibles : %s",
		language.Arabic:  "الاستخدام: `/currency <code>`\nالمتاح: %s",
		language.Chinese: "用法：`/currency <code>`\n支持：%s",
	},
	MsgHistoryEmpty: {
		language.Spanish: "Aún no hay análisis guardados. Envía una foto para empezar.",
		language.French:  "Aucune analyse enregistrée. Envoyez une photo pour commencer.",
		language.Arabic:  "لا توجد تحليلات محفوظة بعد. أرسل صورة للبدء.",
		language.Chinese: "暂无已保存的分析。发送照片即可开始。",
	},
	MsgHistoryHeader: {
		language.Spanish: "*Análisis recientes* (%d en total)",
		language.French:  "*Analyses récentes* (%d au total)",
		language.Arabic:  "*التحليلات الأخيرة* (%d إجمالاً)",
		language.Chinese: "*最近的分析*（共 %d 条）",
	},
	MsgHistoryFailed: {
		language.Spanish: "No se pudo cargar tu historial. Inténtalo más tarde.",
		language.French:  "Impossible de charger votre historique. Réessayez plus tard.",
		language.Arabic:  "تعذر تحميل السجل. يرجى المحاولة لاحقاً.",
		language.Chinese: "无法加载历史记录，请稍后再试。",
	},
	MsgHistoryUnknown: {
		language.Spanish: "Reloj no identificado",
		language.French:  "Montre non identifiée",
		language.Arabic:  "ساعة غير معروفة",
		language.Chinese: "未识别的手表",
	},
	MsgUnsupportedFile: {
		language.Spanish: "Solo se pueden analizar archivos de imagen.",
		language.French:  "Seuls les fichiers image peuvent être analysés.",
		language.Arabic:  "يمكن تحليل ملفات الصور فقط.",
		language.Chinese: "只能分析图片文件。",
	},

	LblIdentified: {
		language.Spanish: "Reloj identificado",
		language.French:  "Montre identifiée",
		language.Arabic:  "الساعة المحددة",
		language.Chinese: "识别结果",
	},
	LblReference: {
		language.Spanish: "Referencia",
		language.French:  "Référence",
		language.Arabic:  "الرقم المرجعي",
		language.Chinese: "型号编号",
	},
	LblConfidence: {
		language.Spanish: "Confianza de identificación",
		language.French:  "Confiance d'identification",
		language.Arabic:  "ثقة التعرف",
		language.Chinese: "识别置信度",
	},
	LblEstimatedValue: {
		language.Spanish: "Valor estimado",
		language.French:  "Valeur estimée",
		language.Arabic:  "القيمة التقديرية",
		language.Chinese: "估值",
	},
	LblAuthenticity: {
		language.Spanish: "Autenticidad",
		language.French:  "Authenticité",
		language.Arabic:  "الأصالة",
		language.Chinese: "真伪",
	},
	LblLikelyAuthentic: {
		language.Spanish: "Probablemente auténtico",
		language.French:  "Probablement authentique",
		language.Arabic:  "أصلية على الأرجح",
		language.Chinese: "可能为正品",
	},
	LblNotAuthentic: {
		language.Spanish: "Posible réplica",
		language.French:  "Contrefaçon possible",
		language.Arabic:  "تقليد محتمل",
		language.Chinese: "可能为仿品",
	},
	LblRedFlags: {
		language.Spanish: "Señales de alerta",
		language.French:  "Signaux d'alerte",
		language.Arabic:  "علامات تحذيرية",
		language.Chinese: "可疑之处",
	},
	LblIndicators: {
		language.Spanish: "Indicadores de autenticidad",
		language.French:  "Indices d'authenticité",
		language.Arabic:  "مؤشرات الأصالة",
		language.Chinese: "正品特征",
	},
	LblMaterial: {
		language.Spanish: "Material",
		language.French:  "Matériau",
		language.Arabic:  "المادة",
		language.Chinese: "材质",
	},
	LblMovement: {
		language.Spanish: "Movimiento",
		language.French:  "Mouvement",
		language.Arabic:  "الحركة",
		language.Chinese: "机芯",
	},
	LblYear: {
		language.Spanish: "Año",
		language.French:  "Année",
		language.Arabic:  "السنة",
		language.Chinese: "年份",
	},
	LblCondition: {
		language.Spanish: "Estado",
		language.French:  "État",
		language.Arabic:  "الحالة",
		language.Chinese: "成色",
	},
	LblFeatures: {
		language.Spanish: "Características destacadas",
		language.French:  "Caractéristiques notables",
		language.Arabic:  "ميزات بارزة",
		language.Chinese: "显著特征",
	},
	LblNotes: {
		language.Spanish: "Notas",
		language.French:  "Remarques",
		language.Arabic:  "ملاحظات",
		language.Chinese: "备注",
	},
	LblNoWatch: {
		language.Spanish: "No se pudo identificar ningún reloj en esta foto. Prueba con una toma más cercana y bien iluminada de la esfera.",
		language.French:  "Aucune montre n'a pu être identifiée sur cette photo. Essayez un cliché plus proche et bien éclairé du cadran.",
		language.Arabic:  "لم يتم التعرف على أي ساعة في هذه الصورة. جرّب صورة أقرب وبإضاءة جيدة للميناء.",
		language.Chinese: "未能在照片中识别出手表。请靠近表盘并在光线充足处重新拍摄。",
	},

	MsgErrEmptyInput: {
		language.Spanish: "No se proporcionó ninguna imagen.",
		language.French:  "Aucune image fournie.",
		language.Arabic:  "لم يتم تقديم أي صورة.",
		language.Chinese: "未提供图片。",
	},
	MsgErrImageRead: {
		language.Spanish: "No se pudo leer la imagen. Intenta tomar la foto de nuevo.",
		language.French:  "Impossible de lire l'image. Veuillez reprendre la photo.",
		language.Arabic:  "تعذرت قراءة الصورة. يرجى التقاط الصورة مرة أخرى.",
		language.Chinese: "无法读取图片，请重新拍摄。",
	},
	MsgErrParse: {
		language.Spanish: "El servicio de IA devolvió una respuesta no válida. Inténtalo de nuevo.",
		language.French:  "Le service d'IA a renvoyé une réponse invalide. Veuillez réessayer.",
		language.Arabic:  "أعادت خدمة الذكاء الاصطناعي استجابة غير صالحة. يرجى المحاولة مرة أخرى.",
		language.Chinese: "AI 服务返回了无效的响应，请重试。",
	},
	MsgErrRateLimited: {
		language.Spanish: "El servicio está ocupado. Inténtalo de nuevo en unos momentos.",
		language.French:  "Le service est momentanément surchargé. Réessayez dans quelques instants.",
		language.Arabic:  "الخدمة مشغولة مؤقتاً. يرجى المحاولة بعد لحظات.",
		language.Chinese: "服务暂时繁忙，请稍后再试。",
	},
	MsgErrTimeout: {
		language.Spanish: "El análisis tardó demasiado. Inténtalo con una imagen más nítida.",
		language.French:  "L'analyse a pris trop de temps. Réessayez avec une image plus nette.",
		language.Arabic:  "استغرق التحليل وقتاً طويلاً. يرجى المحاولة بصورة أوضح.",
		language.Chinese: "分析超时，请使用更清晰的图片重试。",
	},
	MsgErrNetwork: {
		language.Spanish: "Error de red. Comprueba tu conexión e inténtalo de nuevo.",
		language.French:  "Erreur réseau. Vérifiez votre connexion et réessayez.",
		language.Arabic:  "خطأ في الشبكة. يرجى التحقق من الاتصال والمحاولة مرة أخرى.",
		language.Chinese: "网络错误，请检查网络连接后重试。",
	},
	MsgErrEmptyResult: {
		language.Spanish: "El servicio de IA devolvió un resultado vacío.",
		language.French:  "Le service d'IA a renvoyé un résultat vide.",
		language.Arabic:  "أعادت خدمة الذكاء الاصطناعي نتيجة فارغة.",
		language.Chinese: "AI 服务返回了空结果。",
	},
	MsgErrCanceled: {
		language.Spanish: "El análisis fue cancelado.",
		language.French:  "L'analyse a été annulée.",
		language.Arabic:  "تم إلغاء التحليل.",
		language.Chinese: "分析已取消。",
	},
	MsgErrUnclassified: {
		language.Spanish: "El análisis falló. Inténtalo de nuevo.",
		language.French:  "L'analyse a échoué. Veuillez réessayer.",
		language.Arabic:  "فشل التحليل. يرجى المحاولة مرة أخرى.",
		language.Chinese: "分析失败，请重试。",
	},
}

var messages = buildCatalog()

func buildCatalog() *catalog.Builder {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	for key, byLang := range translations {
		_ = b.SetString(language.English, key, key)
		for tag, text := range byLang {
			_ = b.SetString(tag, key, text)
		}
	}
	return b
}

// printerFor returns a printer for a supported language code.
func printerFor(code string) *message.Printer {
	lang := analysis.ResolveLanguage(code)
	return message.NewPrinter(language.Make(lang.Code), message.Catalog(messages))
}

var errorMessages = map[analysis.Kind]string{
	analysis.KindEmptyInput:           MsgErrEmptyInput,
	analysis.KindImageReadFailure:     MsgErrImageRead,
	analysis.KindResponseParseFailure: MsgErrParse,
	analysis.KindRateLimited:          MsgErrRateLimited,
	analysis.KindTimeout:              MsgErrTimeout,
	analysis.KindNetworkFailure:       MsgErrNetwork,
	analysis.KindEmptyResult:          MsgErrEmptyResult,
	analysis.KindCanceled:             MsgErrCanceled,
	analysis.KindUnclassified:         MsgErrUnclassified,
}

// errorMessage returns the user-facing text for err in the given language.
func errorMessage(p *message.Printer, err error) string {
	key, ok := errorMessages[analysis.KindOf(err)]
	if !ok {
		key = MsgErrUnclassified
	}
	return p.Sprintf(key)
}
