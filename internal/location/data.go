package location

// Facility types
const (
	TypeAcademic = "Academic Hospital"
	TypeClinic   = "Clinic"
	TypeCHC      = "CHC"
	TypeDistrict = "District Hospital"
	TypePrivate  = "Private Hospital"
	TypeRegional = "Regional Hospital"
	TypeTertiary = "Tertiary Hospital"
)

// FacilityTypeChoices lists every facility type in display order
var FacilityTypeChoices = []string{
	TypeAcademic, TypeClinic, TypeCHC, TypeDistrict, TypePrivate, TypeRegional, TypeTertiary,
}

var districtOrder = []string{
	"Alfred Nzo DM",
	"Amathole DM",
	"Buffalo City MM",
	"Chris Hani DM",
	"Joe Qabi DM",
	"Nelson Mandela MM",
	"OR Tambo DM",
	"Sarah Baartman DM",
}

var municipalityData = map[string][]string{
	"Alfred Nzo DM":     {"Matatiele LM", "Umzimvubu LM", "Mbizana LM", "Ntabankulu LM"},
	"Amathole DM":       {"Mbhashe LM", "Raymond Mhlaba LM", "Amahlathi LM", "Mnquma LM", "Great Kei LM", "Ngqushwa LM"},
	"Buffalo City MM":   {"Buffalo City SD"},
	"Chris Hani DM":     {"Emalahleni LM", "Inxuba Yethemba LM", "Enoch Mgijima LM", "Engcobo LM", "Sakhisizwe LM", "Intsika Yethu LM"},
	"Joe Qabi DM":       {"Walter Sisulu LM", "Elundini LM", "Senqu LM"},
	"Nelson Mandela MM": {"N Mandela B SD", "N Mandela C SD", "N Mandela A SD"},
	"OR Tambo DM":       {"Nyandeni LM", "Ingquza Hill LM", "Mhlontlo LM", "King Sabata Dalindyebo LM", "Port St Johns LM"},
	"Sarah Baartman DM": {"Makana LM", "Blue Crane Route LM", "Ndlambe LM", "Dr B Naudé LM", "Sundays River Valley LM", "Kou-Kamma LM", "Kouga LM"},
}

var facilityData = map[string][]string{
	"Matatiele LM":              {"Maluti CHC", "Tayler Bequest Hospital (Matatiele)"},
	"Mbizana LM":                {"Greenville Hospital", "St Patrick's Hospital"},
	"Ntabankulu LM":             {"Sipetu Hospital", "Tabankulu CHC"},
	"Umzimvubu LM":              {"Madzikane Ka Zulu Memorial Hospital", "Mount Ayliff Hospital"},
	"Amahlathi LM":              {"Cathcart Hospital", "SS Gida Hospital", "Stutterheim Hospital"},
	"Great Kei LM":              {"Komga Hospital"},
	"Mbhashe LM":                {"Idutywa Village CHC", "Madwaleni Hospital", "Willowvale CHC", "Xhora CHC"},
	"Mnquma LM":                 {"Butterworth Hospital", "Nqamakwe CHC", "Tafalofefe Hospital"},
	"Ngqushwa LM":               {"Nompumelelo (Peddie) Hospital"},
	"Raymond Mhlaba LM":         {"Adelaide Hospital", "Bedford Hospital", "Fort Beaufort Hospital", "Middledrift CHC", "Victoria Hospital"},
	"Buffalo City SD":           {"Bhisho Hospital", "Cecilia Makiwane Hospital", "Dimbaza CHC", "Duncan Village CHC", "Empilweni Gompo CHC", "Frere Hospital", "Nontyatyambo CHC"},
	"Emalahleni LM":             {"Dordrecht Hospital", "Glen Grey Hospital", "Indwe Hospital", "Ngonyama CHC"},
	"Engcobo LM":                {"All Saints Hospital", "Mjanyana Hospital", "Ngcobo CHC", "Zwelakhe Dalasile CHC"},
	"Enoch Mgijima LM":          {"Care Cure Queenstown Hospital", "Frontier Hospital", "Hewu Hospital", "Ilinge Clinic", "Life Queenstown Prv Hosp", "Martje Venter (Tarkastad) Hospital", "Molteno Hospital", "Nomzamo CHC", "Sterkstroom Hospital", "Thornhill CHC", "Whittlesea CHC"},
	"Intsika Yethu LM":          {"Cofimvaba Hospital", "Kuyasa CHC"},
	"Inxuba Yethemba LM":        {"Cradock Hospital", "Wilhelm Stahl (Middelburg) Hospital"},
	"Sakhisizwe LM":             {"Cala Hospital", "Elliot Hospital"},
	"Elundini LM":               {"Maclear Hospital", "Taylor Bequest Hospital (Elundini)"},
	"Senqu LM":                  {"Cloete Joubert (Barkly East) Hospital", "Empilisweni Hospital", "Lady Grey Hospital", "Umlamli Hospital"},
	"Walter Sisulu LM":          {"Aliwal North Hospital", "Burgersdorp Hospital", "Jamestown Hospital", "St Francis Hospital", "Steynsburg Hospital"},
	"N Mandela A SD":            {"Dora Nginza Hospital", "Kwazakhele CHC", "Motherwell CHC"},
	"N Mandela B SD":            {"Laetitia Bam CHC", "Netcare Cuyler Hosp", "Rosedale CHC", "Uitenhage Hospital"},
	"N Mandela C SD":            {"Central CHC (Sandford)", "Gqebera CHC", "Korsten CHC", "Life Mercantile Hospital", "Life St George's Hosp", "Livingstone Hospital", "Netcare Greenacres Hosp", "New Brighton CHC", "Port Elizabeth Provincial Hospital", "West End CHC", "Westways Hosp"},
	"Ingquza Hill LM":           {"Flagstaff CHC", "Holy Cross Hospital", "St Elizabeth's Hospital", "Lusikisiki Village Clinic"},
	"King Sabata Dalindyebo LM": {"Baziya CHC", "Canzibe Hospital", "Crossmed Mthatha Private Hospital", "Life St Mary's Hosp", "Mbekweni CHC", "Mqanduli CHC", "Mthatha General Hospital", "Nelson Mandela Academic Hospital", "Ngangelizwe CHC", "Ngcwanguba CHC", "Zithulele Hospital"},
	"Mhlontlo LM":               {"Dr Malizo Mpehle Memorial Hospital", "Isilimela Hospital", "Mhlakulo CHC", "Nessie Knight Hospital", "Qumbu CHC", "St Lucy's Hospital"},
	"Nyandeni LM":               {"Canzibe Hospital", "Makhotyana CHC", "St Barnabas Hospital"},
	"Port St Johns LM":          {"Bambisana Hospital", "Isilimela Hospital", "Port St Johns CHC", "Tombo CHC"},
	"Blue Crane Route LM":       {"Andries Vosloo Hospital"},
	"Dr B Naudé LM":             {"Aberdeen Hospital", "Graaff-Reinet Day Hospital", "Midland Hospital", "SAWAS Memorial (Jansenville) Hospital", "Willowmore Hospital"},
	"Kouga LM":                  {"Humansdorp Hospital", "Life Isivivana Hosp"},
	"Kou-Kamma LM":              {"BJ Vorster (Kareedouw) Hospital", "Joubertina CHC"},
	"Makana LM":                 {"Settlers Day Hospital CHC", "Settlers Hospital"},
	"Ndlambe LM":                {"Port Alfred Hospital"},
	"Sundays River Valley LM":   {"Sundays Valley (Kirkwood) Hospital"},
}

// facilityTypes maps every facility to its type
var facilityTypes = map[string]string{
	"Aberdeen Hospital":                     TypeDistrict,
	"Adelaide Hospital":                     TypeDistrict,
	"Aliwal North Hospital":                 TypeDistrict,
	"All Saints Hospital":                   TypeDistrict,
	"Andries Vosloo Hospital":               TypeDistrict,
	"BJ Vorster (Kareedouw) Hospital":       TypeDistrict,
	"Bambisana Hospital":                    TypeDistrict,
	"Baziya CHC":                            TypeCHC,
	"Bedford Hospital":                      TypeDistrict,
	"Bhisho Hospital":                       TypeDistrict,
	"Burgersdorp Hospital":                  TypeDistrict,
	"Butterworth Hospital":                  TypeDistrict,
	"Cala Hospital":                         TypeDistrict,
	"Canzibe Hospital":                      TypeDistrict,
	"Care Cure Queenstown Hospital":         TypePrivate,
	"Cathcart Hospital":                     TypeDistrict,
	"Cecilia Makiwane Hospital":             TypeRegional,
	"Central CHC (Sandford)":                TypeCHC,
	"Cloete Joubert (Barkly East) Hospital": TypeDistrict,
	"Cofimvaba Hospital":                    TypeDistrict,
	"Cradock Hospital":                      TypeDistrict,
	"Crossmed Mthatha Private Hospital":     TypePrivate,
	"Dimbaza CHC":                           TypeCHC,
	"Dora Nginza Hospital":                  TypeRegional,
	"Dordrecht Hospital":                    TypeDistrict,
	"Dr Malizo Mpehle Memorial Hospital":    TypeDistrict,
	"Duncan Village CHC":                    TypeCHC,
	"Elliot Hospital":                       TypeDistrict,
	"Empilisweni Hospital":                  TypeDistrict,
	"Empilweni Gompo CHC":                   TypeCHC,
	"Flagstaff CHC":                         TypeCHC,
	"Fort Beaufort Hospital":                TypeDistrict,
	"Frere Hospital":                        TypeTertiary,
	"Frontier Hospital":                     TypeRegional,
	"Glen Grey Hospital":                    TypeDistrict,
	"Gqebera CHC":                           TypeCHC,
	"Graaff-Reinet Day Hospital":            TypeDistrict,
	"Greenville Hospital":                   TypeDistrict,
	"Hewu Hospital":                         TypeDistrict,
	"Holy Cross Hospital":                   TypeDistrict,
	"Humansdorp Hospital":                   TypeDistrict,
	"Idutywa Village CHC":                   TypeCHC,
	"Ilinge Clinic":                         TypeClinic,
	"Indwe Hospital":                        TypeDistrict,
	"Isilimela Hospital":                    TypeDistrict,
	"Jamestown Hospital":                    TypeDistrict,
	"Joubertina CHC":                        TypeCHC,
	"Komga Hospital":                        TypeDistrict,
	"Korsten CHC":                           TypeCHC,
	"Kuyasa CHC":                            TypeCHC,
	"Kwazakhele CHC":                        TypeCHC,
	"Lady Grey Hospital":                    TypeDistrict,
	"Laetitia Bam CHC":                      TypeCHC,
	"Life Isivivana Hosp":                   TypePrivate,
	"Life Mercantile Hospital":              TypePrivate,
	"Life Queenstown Prv Hosp":              TypePrivate,
	"Life St George's Hosp":                 TypePrivate,
	"Life St Mary's Hosp":                   TypePrivate,
	"Livingstone Hospital":                  TypeTertiary,
	"Lusikisiki Village Clinic":             TypeClinic,
	"Maclear Hospital":                      TypeDistrict,
	"Madwaleni Hospital":                    TypeDistrict,
	"Madzikane Ka Zulu Memorial Hospital":   TypeDistrict,
	"Makhotyana CHC":                        TypeCHC,
	"Maluti CHC":                            TypeCHC,
	"Martje Venter (Tarkastad) Hospital":    TypeDistrict,
	"Mbekweni CHC":                          TypeCHC,
	"Mhlakulo CHC":                          TypeCHC,
	"Middledrift CHC":                       TypeCHC,
	"Midland Hospital":                      TypeDistrict,
	"Mjanyana Hospital":                     TypeDistrict,
	"Molteno Hospital":                      TypeDistrict,
	"Motherwell CHC":                        TypeCHC,
	"Mount Ayliff Hospital":                 TypeDistrict,
	"Mqanduli CHC":                          TypeCHC,
	"Mthatha General Hospital":              TypeRegional,
	"Nelson Mandela Academic Hospital":      TypeAcademic,
	"Nessie Knight Hospital":                TypeDistrict,
	"Netcare Cuyler Hosp":                   TypePrivate,
	"Netcare Greenacres Hosp":               TypePrivate,
	"New Brighton CHC":                      TypeCHC,
	"Ngangelizwe CHC":                       TypeCHC,
	"Ngcobo CHC":                            TypeCHC,
	"Ngcwanguba CHC":                        TypeCHC,
	"Ngonyama CHC":                          TypeCHC,
	"Nompumelelo (Peddie) Hospital":         TypeDistrict,
	"Nomzamo CHC":                           TypeCHC,
	"Nontyatyambo CHC":                      TypeCHC,
	"Nqamakwe CHC":                          TypeCHC,
	"Port Alfred Hospital":                  TypeDistrict,
	"Port Elizabeth Provincial Hospital":    TypeRegional,
	"Port St Johns CHC":                     TypeCHC,
	"Qumbu CHC":                             TypeCHC,
	"Rosedale CHC":                          TypeCHC,
	"SAWAS Memorial (Jansenville) Hospital": TypeDistrict,
	"SS Gida Hospital":                      TypeDistrict,
	"Settlers Day Hospital CHC":             TypeCHC,
	"Settlers Hospital":                     TypeRegional,
	"Sipetu Hospital":                       TypeDistrict,
	"St Barnabas Hospital":                  TypeDistrict,
	"St Elizabeth's Hospital":               TypeRegional,
	"St Francis Hospital":                   TypeDistrict,
	"St Lucy's Hospital":                    TypeDistrict,
	"St Patrick's Hospital":                 TypeDistrict,
	"Sterkstroom Hospital":                  TypeDistrict,
	"Steynsburg Hospital":                   TypeDistrict,
	"Stutterheim Hospital":                  TypeDistrict,
	"Sundays Valley (Kirkwood) Hospital":    TypeDistrict,
	"Tabankulu CHC":                         TypeCHC,
	"Tafalofefe Hospital":                   TypeDistrict,
	"Tayler Bequest Hospital (Matatiele)":   TypeDistrict,
	"Taylor Bequest Hospital (Elundini)":    TypeDistrict,
	"Thornhill CHC":                         TypeCHC,
	"Tombo CHC":                             TypeCHC,
	"Uitenhage Hospital":                    TypeRegional,
	"Umlamli Hospital":                      TypeDistrict,
	"Victoria Hospital":                     TypeDistrict,
	"West End CHC":                          TypeCHC,
	"Westways Hosp":                         TypePrivate,
	"Whittlesea CHC":                        TypeCHC,
	"Wilhelm Stahl (Middelburg) Hospital":   TypeDistrict,
	"Willowmore Hospital":                   TypeDistrict,
	"Willowvale CHC":                        TypeCHC,
	"Xhora CHC":                             TypeCHC,
	"Zithulele Hospital":                    TypeDistrict,
	"Zwelakhe Dalasile CHC":                 TypeCHC,
}
