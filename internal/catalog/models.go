package catalog

// Default is the built-in reference database of luxury watch models.
var Default = New(defaultModels)

var defaultModels = []WatchModel{
	{
		Brand:            "Rolex",
		Model:            "Submariner",
		ReferenceNumbers: []string{"126610LN", "126610LV", "126619LB", "126618LN", "126613LN", "126613LB", "124060", "116610LN", "116610LV"},
		YearIntroduced:   1953,
		PriceRange:       PriceRange{Min: 9500, Max: 45000},
		KeyFeatures:      []string{"Ceramic bezel", "Oyster case", "Mercedes hands", "300m water resistance", "Chromalight display", "Glidelock extension"},
		Materials:        []string{"Oystersteel", "Yellow gold", "White gold", "Rolesor"},
		Movements:        []string{"Cal. 3235", "Cal. 3230"},
	},
	{
		Brand:            "Rolex",
		Model:            "Daytona",
		ReferenceNumbers: []string{"126500LN", "126508", "126509", "126506", "126519LN", "126500WN", "116500LN", "116520"},
		YearIntroduced:   1963,
		PriceRange:       PriceRange{Min: 30000, Max: 95000},
		KeyFeatures:      []string{"Chronograph", "Tachymeter bezel", "Oyster case", "Racing design", "Ceramic bezel", "Cal. 4131 movement"},
		Materials:        []string{"Oystersteel", "White gold", "Yellow gold", "Everose gold", "Platinum"},
		Movements:        []string{"Cal. 4131", "Cal. 4130"},
	},
	{
		Brand:            "Rolex",
		Model:            "GMT-Master II",
		ReferenceNumbers: []string{"126710BLRO", "126710BLNR", "126710GRNR", "126720VTNR", "126711CHNR", "126715CHNR", "126719BLRO", "116710LN"},
		YearIntroduced:   1982,
		PriceRange:       PriceRange{Min: 11000, Max: 52000},
		KeyFeatures:      []string{"Dual time zone", "Ceramic bezel", "Jubilee/Oyster bracelet", "24-hour hand", "Chromalight display", "Pepsi/Batman/Sprite bezels"},
		Materials:        []string{"Oystersteel", "Yellow gold", "White gold", "Everose gold", "Rolesor"},
		Movements:        []string{"Cal. 3285", "Cal. 3186"},
	},
	{
		Brand:            "Rolex",
		Model:            "Datejust",
		ReferenceNumbers: []string{"126234", "126200", "126334", "126333", "126300", "126301", "278274", "278383", "278384", "116234"},
		YearIntroduced:   1945,
		PriceRange:       PriceRange{Min: 7200, Max: 18000},
		KeyFeatures:      []string{"Date window", "Cyclops lens", "Fluted bezel", "Jubilee/Oyster bracelet", "Chromalight display", "36mm/41mm sizes"},
		Materials:        []string{"Oystersteel", "Yellow gold", "White gold", "Everose gold", "Rolesor"},
		Movements:        []string{"Cal. 3235", "Cal. 3135"},
	},
	{
		Brand:            "Rolex",
		Model:            "Day-Date",
		ReferenceNumbers: []string{"228238", "228235", "228239", "228206", "228349RBR", "128238", "118238"},
		YearIntroduced:   1956,
		PriceRange:       PriceRange{Min: 38000, Max: 120000},
		KeyFeatures:      []string{"Day and date display", "President bracelet", "Precious metals only", "Chromalight display", "Double aperture"},
		Materials:        []string{"Yellow gold", "White gold", "Everose gold", "Platinum"},
		Movements:        []string{"Cal. 3255"},
	},
	{
		Brand:            "Rolex",
		Model:            "Explorer",
		ReferenceNumbers: []string{"124270", "124273", "214270", "114270"},
		YearIntroduced:   1953,
		PriceRange:       PriceRange{Min: 7500, Max: 13000},
		KeyFeatures:      []string{"3-6-9 dial", "Simple design", "Oyster case", "Chromalight display", "36mm case", "Time-only"},
		Materials:        []string{"Oystersteel", "Rolesor"},
		Movements:        []string{"Cal. 3230", "Cal. 3132"},
	},
	{
		Brand:            "Rolex",
		Model:            "Sea-Dweller",
		ReferenceNumbers: []string{"126600", "126603", "136660", "116600", "1665"},
		YearIntroduced:   1967,
		PriceRange:       PriceRange{Min: 13500, Max: 20000},
		KeyFeatures:      []string{"Helium escape valve", "1220m water resistance", "No cyclops", "Red Sea-Dweller text", "43mm case", "Ceramic bezel"},
		Materials:        []string{"Oystersteel", "Rolesor", "Yellow gold"},
		Movements:        []string{"Cal. 3235", "Cal. 3135"},
	},
	{
		Brand:            "Rolex",
		Model:            "Deepsea",
		ReferenceNumbers: []string{"136660", "126660", "136668LB", "116660"},
		YearIntroduced:   2008,
		PriceRange:       PriceRange{Min: 14000, Max: 25000},
		KeyFeatures:      []string{"3900m water resistance", "Ringlock System", "Helium escape valve", "Extra thick case", "44mm case", "D-Blue dial", "RLX titanium back"},
		Materials:        []string{"Oystersteel", "RLX titanium", "Yellow gold"},
		Movements:        []string{"Cal. 3235", "Cal. 3135"},
	},
	{
		Brand:            "Rolex",
		Model:            "Yacht-Master",
		ReferenceNumbers: []string{"126622", "126621", "126655", "226658", "226659", "116622", "268622"},
		YearIntroduced:   1992,
		PriceRange:       PriceRange{Min: 12000, Max: 65000},
		KeyFeatures:      []string{"Rotatable bezel", "Nautical design", "Oysterflex strap option", "Polished bezel", "40mm/42mm sizes", "Bidirectional bezel"},
		Materials:        []string{"Oystersteel", "Rolesor", "Everose gold", "Yellow gold", "White gold"},
		Movements:        []string{"Cal. 3235", "Cal. 3135"},
	},
	{
		Brand:            "Rolex",
		Model:            "Sky-Dweller",
		ReferenceNumbers: []string{"336934", "336935", "336938", "336239", "336933", "326934", "326935", "326238"},
		YearIntroduced:   2012,
		PriceRange:       PriceRange{Min: 17000, Max: 58000},
		KeyFeatures:      []string{"Annual calendar", "Dual time zone", "Saros system", "Fluted ring command bezel", "42mm case", "Month display"},
		Materials:        []string{"Oystersteel", "Rolesor", "Yellow gold", "White gold", "Everose gold"},
		Movements:        []string{"Cal. 9002", "Cal. 9001"},
	},
	{
		Brand:            "Rolex",
		Model:            "Milgauss",
		ReferenceNumbers: []string{"116400GV", "116400"},
		YearIntroduced:   1956,
		PriceRange:       PriceRange{Min: 9500, Max: 12000},
		KeyFeatures:      []string{"Anti-magnetic", "Green sapphire crystal", "Lightning bolt hand", "1000 gauss resistance", "Z-Blue dial", "Scientific heritage"},
		Materials:        []string{"Oystersteel"},
		Movements:        []string{"Cal. 3131"},
	},
	{
		Brand:            "Rolex",
		Model:            "Air-King",
		ReferenceNumbers: []string{"126900", "116900"},
		YearIntroduced:   1945,
		PriceRange:       PriceRange{Min: 7500, Max: 8500},
		KeyFeatures:      []string{"Aviation heritage", "3-6-9 dial", "Chromalight display", "Oyster case", "40mm case", "Black dial"},
		Materials:        []string{"Oystersteel"},
		Movements:        []string{"Cal. 3230", "Cal. 3131"},
	},
	{
		Brand:            "Rolex",
		Model:            "Explorer II",
		ReferenceNumbers: []string{"226570", "226571", "216570"},
		YearIntroduced:   1971,
		PriceRange:       PriceRange{Min: 10000, Max: 14500},
		KeyFeatures:      []string{"24-hour hand", "Fixed bezel", "Cave exploration design", "Date window", "42mm case", "White/black dial options"},
		Materials:        []string{"Oystersteel", "Rolesor"},
		Movements:        []string{"Cal. 3285", "Cal. 3187"},
	},
	{
		Brand:            "Rolex",
		Model:            "Oyster Perpetual",
		ReferenceNumbers: []string{"124300", "126000", "277200", "124200", "277300"},
		YearIntroduced:   1931,
		PriceRange:       PriceRange{Min: 6500, Max: 9000},
		KeyFeatures:      []string{"No date", "Colorful dials", "Entry-level Rolex", "Simple design", "31mm/36mm/41mm sizes", "Bright dial colors"},
		Materials:        []string{"Oystersteel"},
		Movements:        []string{"Cal. 3230"},
	},
	{
		Brand:            "Rolex",
		Model:            "Perpetual 1908",
		ReferenceNumbers: []string{"52508", "52509", "52510", "52505"},
		YearIntroduced:   2023,
		PriceRange:       PriceRange{Min: 25000, Max: 38000},
		KeyFeatures:      []string{"Dress watch", "Thin profile", "Manual winding", "Small seconds", "Elegant design", "39mm case", "Domed crystal", "Leather strap"},
		Materials:        []string{"Yellow gold", "White gold", "Platinum"},
		Movements:        []string{"Cal. 7140"},
	},
	{
		Brand: "Rolex",
		Model: "Land-Dweller",
		ReferenceNumbers: []string{
			"127334", "127335", "127385TBR", "127386TBR", "127336", "127286TBR", "127234", "127236", "127235", "127285TBR",
			"M127334-0001", "M127335-0001", "M127385TBR-0001", "M127386TBR-0001", "M127336-0001",
			"M127286TBR-0001", "M127234-0001", "M127236-0001", "M127235-0001", "M127285TBR-0001",
		},
		YearIntroduced: 2025,
		PriceRange:     PriceRange{Min: 14800, Max: 93000},
		KeyFeatures: []string{
			"36mm and 40mm case sizes", "Integrated bracelet design", "5 Hz high frequency movement", "Chromalight display",
			"32 patent applications", "18 model-exclusive patents", "Fluid case lines", "Modern elegance design",
			"Calibre 7135", "New Rolex 2025 collection",
		},
		Materials: []string{"Oystersteel", "White gold", "Platinum", "Everose gold"},
		Movements: []string{"Cal. 7135"},
	},
	{
		Brand:            "Patek Philippe",
		Model:            "Nautilus",
		ReferenceNumbers: []string{"5711/1A", "5712/1A", "5726/1A", "5980/1A", "5811/1A"},
		YearIntroduced:   1976,
		PriceRange:       PriceRange{Min: 70000, Max: 150000},
		KeyFeatures:      []string{"Porthole design", "Integrated bracelet", "Horizontal embossed dial"},
		Materials:        []string{"Stainless steel", "White gold", "Rose gold"},
		Movements:        []string{"Cal. 26-330 S C", "Cal. 324 S C"},
	},
	{
		Brand:            "Patek Philippe",
		Model:            "Aquanaut",
		ReferenceNumbers: []string{"5167A", "5168G", "5164A", "5968A", "5267A"},
		YearIntroduced:   1997,
		PriceRange:       PriceRange{Min: 40000, Max: 90000},
		KeyFeatures:      []string{"Rounded octagonal case", "Tropical composite strap", "Embossed dial"},
		Materials:        []string{"Stainless steel", "White gold", "Rose gold"},
		Movements:        []string{"Cal. 26-330 S C", "Cal. 324 S C"},
	},
	{
		Brand:            "Patek Philippe",
		Model:            "Calatrava",
		ReferenceNumbers: []string{"5196", "5227", "6119", "5296", "5116"},
		YearIntroduced:   1932,
		PriceRange:       PriceRange{Min: 25000, Max: 50000},
		KeyFeatures:      []string{"Simple round case", "Dress watch", "Minimalist design", "Officer case back"},
		Materials:        []string{"White gold", "Rose gold", "Yellow gold", "Platinum"},
		Movements:        []string{"Cal. 215 PS", "Cal. 324 S C"},
	},
	{
		Brand:            "Audemars Piguet",
		Model:            "Royal Oak",
		ReferenceNumbers: []string{"15400ST", "15500ST", "15202ST", "26331ST", "15510ST"},
		YearIntroduced:   1972,
		PriceRange:       PriceRange{Min: 30000, Max: 90000},
		KeyFeatures:      []string{"Octagonal bezel", "Integrated bracelet", "Tapisserie dial", "Exposed screws"},
		Materials:        []string{"Stainless steel", "Rose gold", "White gold", "Titanium"},
		Movements:        []string{"Cal. 3120", "Cal. 4302", "Cal. 2121"},
	},
	{
		Brand:            "Audemars Piguet",
		Model:            "Royal Oak Offshore",
		ReferenceNumbers: []string{"26470ST", "26400SO", "26238ST", "15710ST", "26420SO"},
		YearIntroduced:   1993,
		PriceRange:       PriceRange{Min: 25000, Max: 80000},
		KeyFeatures:      []string{"Large case", "Chronograph", "Rubber strap option", "Bold design"},
		Materials:        []string{"Stainless steel", "Rose gold", "Titanium", "Ceramic"},
		Movements:        []string{"Cal. 3126/3840", "Cal. 4404"},
	},
	{
		Brand:            "Audemars Piguet",
		Model:            "Code 11.59",
		ReferenceNumbers: []string{"15210OR", "15210BC", "26393BC", "26393OR"},
		YearIntroduced:   2019,
		PriceRange:       PriceRange{Min: 35000, Max: 100000},
		KeyFeatures:      []string{"Round case", "Sapphire crystal sides", "Modern design", "Multiple complications"},
		Materials:        []string{"Rose gold", "White gold", "Stainless steel"},
		Movements:        []string{"Cal. 4302", "Cal. 4401"},
	},
	{
		Brand:            "Omega",
		Model:            "Speedmaster Professional",
		ReferenceNumbers: []string{"310.30.42.50.01.001", "310.32.42.50.01.001", "311.30.42.30.01.005"},
		YearIntroduced:   1957,
		PriceRange:       PriceRange{Min: 6000, Max: 12000},
		KeyFeatures:      []string{"Moonwatch", "Chronograph", "Tachymeter bezel", "Hesalite crystal"},
		Materials:        []string{"Stainless steel", "Gold", "Titanium"},
		Movements:        []string{"Cal. 3861", "Cal. 1861"},
	},
	{
		Brand:            "Omega",
		Model:            "Seamaster 300M",
		ReferenceNumbers: []string{"210.30.42.20.01.001", "210.32.42.20.01.001", "210.90.42.20.01.001"},
		YearIntroduced:   1993,
		PriceRange:       PriceRange{Min: 5000, Max: 10000},
		KeyFeatures:      []string{"Helium escape valve", "Ceramic bezel", "Wave dial", "300m water resistance"},
		Materials:        []string{"Stainless steel", "Gold", "Titanium", "Sedna gold"},
		Movements:        []string{"Cal. 8800", "Cal. 8806"},
	},
	{
		Brand:            "Omega",
		Model:            "Constellation",
		ReferenceNumbers: []string{"131.10.29.20.52.001", "131.20.29.20.52.002", "131.25.29.20.52.002"},
		YearIntroduced:   1952,
		PriceRange:       PriceRange{Min: 4000, Max: 12000},
		KeyFeatures:      []string{"Griffes claws", "Star emblem", "Pie-pan dial", "Integrated bracelet"},
		Materials:        []string{"Stainless steel", "Gold", "Sedna gold"},
		Movements:        []string{"Cal. 8700", "Cal. 8800"},
	},
	{
		Brand:            "Cartier",
		Model:            "Santos",
		ReferenceNumbers: []string{"WSSA0029", "WSSA0018", "WSSA0030", "WGSA0007"},
		YearIntroduced:   1904,
		PriceRange:       PriceRange{Min: 7000, Max: 35000},
		KeyFeatures:      []string{"Square case", "Exposed screws", "Roman numerals", "Quick-change bracelet"},
		Materials:        []string{"Stainless steel", "Gold", "Rose gold"},
		Movements:        []string{"Cal. 1847 MC", "Cal. 9612 MC"},
	},
	{
		Brand:            "Cartier",
		Model:            "Tank",
		ReferenceNumbers: []string{"WSTA0041", "WSTA0052", "W5200003", "WGTA0041"},
		YearIntroduced:   1917,
		PriceRange:       PriceRange{Min: 3500, Max: 30000},
		KeyFeatures:      []string{"Rectangular case", "Roman numerals", "Railroad track minutes", "Blue sword hands"},
		Materials:        []string{"Stainless steel", "Yellow gold", "Rose gold", "White gold"},
		Movements:        []string{"Cal. 1847 MC", "Quartz"},
	},
	{
		Brand:            "IWC",
		Model:            "Pilot's Watch",
		ReferenceNumbers: []string{"IW377709", "IW327009", "IW377710", "IW389002"},
		YearIntroduced:   1936,
		PriceRange:       PriceRange{Min: 5000, Max: 15000},
		KeyFeatures:      []string{"Large crown", "Conical crown", "High contrast dial", "Anti-magnetic"},
		Materials:        []string{"Stainless steel", "Bronze", "Titanium", "Ceramic"},
		Movements:        []string{"Cal. 69380", "Cal. 32110"},
	},
	{
		Brand:            "IWC",
		Model:            "Portugieser",
		ReferenceNumbers: []string{"IW371605", "IW500710", "IW371617", "IW503501"},
		YearIntroduced:   1939,
		PriceRange:       PriceRange{Min: 12000, Max: 30000},
		KeyFeatures:      []string{"Large case", "Railway track dial", "Leaf hands", "Arabic numerals"},
		Materials:        []string{"Stainless steel", "Rose gold", "White gold"},
		Movements:        []string{"Cal. 79350", "Cal. 52010"},
	},
	{
		Brand:            "Panerai",
		Model:            "Luminor",
		ReferenceNumbers: []string{"PAM01312", "PAM01359", "PAM00524", "PAM01117"},
		YearIntroduced:   1950,
		PriceRange:       PriceRange{Min: 6000, Max: 25000},
		KeyFeatures:      []string{"Crown guard", "Cushion case", "Sandwich dial", "Large numerals"},
		Materials:        []string{"Stainless steel", "Titanium", "Bronze", "Goldtech"},
		Movements:        []string{"P.9010", "P.9000", "P.6000"},
	},
	{
		Brand:            "TAG Heuer",
		Model:            "Carrera",
		ReferenceNumbers: []string{"CBK2110", "CBN2A1A", "CV2A1AB", "CAR2A1W"},
		YearIntroduced:   1963,
		PriceRange:       PriceRange{Min: 3000, Max: 8000},
		KeyFeatures:      []string{"Chronograph", "Racing design", "Tachymeter scale", "Date window"},
		Materials:        []string{"Stainless steel", "Gold", "Titanium"},
		Movements:        []string{"Heuer 02", "Calibre 16"},
	},
	{
		Brand:            "Breitling",
		Model:            "Navitimer",
		ReferenceNumbers: []string{"A23322", "AB0127", "A17395", "AB0910"},
		YearIntroduced:   1952,
		PriceRange:       PriceRange{Min: 7000, Max: 15000},
		KeyFeatures:      []string{"Slide rule bezel", "Chronograph", "Aviation computer", "AOPA wings"},
		Materials:        []string{"Stainless steel", "Gold", "Rose gold"},
		Movements:        []string{"B01", "B23"},
	},
	{
		Brand:            "Jaeger-LeCoultre",
		Model:            "Reverso",
		ReferenceNumbers: []string{"Q3978480", "Q2548520", "Q3958420", "Q2788520"},
		YearIntroduced:   1931,
		PriceRange:       PriceRange{Min: 6000, Max: 50000},
		KeyFeatures:      []string{"Reversible case", "Art Deco design", "Swivel mechanism", "Rectangular case"},
		Materials:        []string{"Stainless steel", "Rose gold", "White gold"},
		Movements:        []string{"Cal. 854", "Cal. 822"},
	},
	{
		Brand:            "Vacheron Constantin",
		Model:            "Overseas",
		ReferenceNumbers: []string{"4500V", "7900V", "5500V", "2000V"},
		YearIntroduced:   1996,
		PriceRange:       PriceRange{Min: 25000, Max: 80000},
		KeyFeatures:      []string{"Integrated bracelet", "Quick-change strap", "Maltese cross bezel", "Sports luxury"},
		Materials:        []string{"Stainless steel", "Rose gold", "White gold"},
		Movements:        []string{"Cal. 5100", "Cal. 2460"},
	},
	{
		Brand:            "A. Lange & Söhne",
		Model:            "Lange 1",
		ReferenceNumbers: []string{"101.021", "191.032", "101.027", "191.039"},
		YearIntroduced:   1994,
		PriceRange:       PriceRange{Min: 40000, Max: 80000},
		KeyFeatures:      []string{"Asymmetric dial", "Outsized date", "Three-day power reserve", "German silver"},
		Materials:        []string{"White gold", "Rose gold", "Yellow gold", "Platinum"},
		Movements:        []string{"L121.1", "L901.0"},
	},
	{
		Brand:            "Hublot",
		Model:            "Big Bang",
		ReferenceNumbers: []string{"301.SB.131.RX", "411.NM.1170.RX", "301.PX.1180.RX"},
		YearIntroduced:   2005,
		PriceRange:       PriceRange{Min: 12000, Max: 25000},
		KeyFeatures:      []string{"Fusion concept", "Visible screws", "Rubber strap", "Skeleton dial"},
		Materials:        []string{"Ceramic", "Titanium", "King Gold", "Carbon"},
		Movements:        []string{"HUB1242", "HUB4100"},
	},
	{
		Brand:            "Grand Seiko",
		Model:            "Heritage",
		ReferenceNumbers: []string{"SBGR311", "SBGA413", "SBGM221", "SBGA211"},
		YearIntroduced:   1960,
		PriceRange:       PriceRange{Min: 5000, Max: 12000},
		KeyFeatures:      []string{"Zaratsu polishing", "Spring Drive", "Hand-finished", "Precision"},
		Materials:        []string{"Stainless steel", "Titanium", "Platinum"},
		Movements:        []string{"9S85", "9R65", "9S27"},
	},
	{
		Brand:            "Tudor",
		Model:            "Black Bay",
		ReferenceNumbers: []string{"79230N", "79230B", "79230R", "M79230N-0009"},
		YearIntroduced:   2012,
		PriceRange:       PriceRange{Min: 3500, Max: 5000},
		KeyFeatures:      []string{"Snowflake hands", "Domed crystal", "Rivet bracelet", "200m water resistance"},
		Materials:        []string{"Stainless steel"},
		Movements:        []string{"MT5602", "MT5612"},
	},
	{
		Brand:            "Tudor",
		Model:            "Pelagos",
		ReferenceNumbers: []string{"25600TN", "25600TB", "25407N", "M25407N-0001"},
		YearIntroduced:   2012,
		PriceRange:       PriceRange{Min: 4000, Max: 5500},
		KeyFeatures:      []string{"Titanium case", "500m water resistance", "Helium valve", "Ceramic bezel"},
		Materials:        []string{"Titanium"},
		Movements:        []string{"MT5612", "MT5400"},
	},
}
