package model

// OtherCountry is the sentinel option that switches sale entry to a
// manually typed country.
const OtherCountry = "OTHER"

// CommonCountries are the markets offered for selection when recording a sale.
var CommonCountries = []string{
	"China", "Russia", "United States", "Germany", "India",
	"Brazil", "United Kingdom", "France", "Italy", "Canada",
	"Australia", "Japan", "South Korea", "Mexico", "Indonesia",
	"Turkey", "Saudi Arabia", "South Africa", "Vietnam", "Thailand",
}

// IsCommonCountry reports whether name is one of the suggested markets.
func IsCommonCountry(name string) bool {
	for _, c := range CommonCountries {
		if c == name {
			return true
		}
	}
	return false
}
