package geo

// Location is a resolved ZIP code.
type Location struct {
	Zip    string
	City   string
	State  string
	County string
	Lat    float64
	Lng    float64
}

// majorZips is the built-in fallback for ZIPs missing from the zip_codes table.
var majorZips = map[string]Location{
	"10001": {"10001", "New York", "NY", "New York", 40.7506, -73.9972},
	"02108": {"02108", "Boston", "MA", "Suffolk", 42.3576, -71.0648},
	"19103": {"19103", "Philadelphia", "PA", "Philadelphia", 39.9522, -75.1743},
	"15222": {"15222", "Pittsburgh", "PA", "Allegheny", 40.4473, -79.9934},
	"21201": {"21201", "Baltimore", "MD", "Baltimore City", 39.2947, -76.6252},
	"20001": {"20001", "Washington", "DC", "District of Columbia", 38.9109, -77.0163},
	"23219": {"23219", "Richmond", "VA", "Richmond City", 37.5407, -77.4360},
	"28202": {"28202", "Charlotte", "NC", "Mecklenburg", 35.2271, -80.8431},
	"30303": {"30303", "Atlanta", "GA", "Fulton", 33.7525, -84.3888},
	"32801": {"32801", "Orlando", "FL", "Orange", 28.5421, -81.3790},
	"33101": {"33101", "Miami", "FL", "Miami-Dade", 25.7791, -80.1978},
	"37203": {"37203", "Nashville", "TN", "Davidson", 36.1505, -86.7916},
	"38103": {"38103", "Memphis", "TN", "Shelby", 35.1440, -90.0490},
	"35203": {"35203", "Birmingham", "AL", "Jefferson", 33.5186, -86.8104},
	"40202": {"40202", "Louisville", "KY", "Jefferson", 38.2527, -85.7585},
	"43215": {"43215", "Columbus", "OH", "Franklin", 39.9612, -82.9988},
	"44113": {"44113", "Cleveland", "OH", "Cuyahoga", 41.4822, -81.6697},
	"45202": {"45202", "Cincinnati", "OH", "Hamilton", 39.1031, -84.5120},
	"46204": {"46204", "Indianapolis", "IN", "Marion", 39.7684, -86.1581},
	"48226": {"48226", "Detroit", "MI", "Wayne", 42.3314, -83.0458},
	"53202": {"53202", "Milwaukee", "WI", "Milwaukee", 43.0389, -87.9065},
	"55401": {"55401", "Minneapolis", "MN", "Hennepin", 44.9850, -93.2700},
	"60601": {"60601", "Chicago", "IL", "Cook", 41.8858, -87.6181},
	"60606": {"60606", "Chicago", "IL", "Cook", 41.8825, -87.6376},
	"61602": {"61602", "Peoria", "IL", "Peoria", 40.6936, -89.5890},
	"63101": {"63101", "St. Louis", "MO", "St. Louis City", 38.6312, -90.1922},
	"64105": {"64105", "Kansas City", "MO", "Jackson", 39.1025, -94.5877},
	"68102": {"68102", "Omaha", "NE", "Douglas", 41.2587, -95.9378},
	"70112": {"70112", "New Orleans", "LA", "Orleans", 29.9566, -90.0775},
	"73102": {"73102", "Oklahoma City", "OK", "Oklahoma", 35.4689, -97.5195},
	"75201": {"75201", "Dallas", "TX", "Dallas", 32.7876, -96.7994},
	"77002": {"77002", "Houston", "TX", "Harris", 29.7566, -95.3597},
	"78205": {"78205", "San Antonio", "TX", "Bexar", 29.4246, -98.4895},
	"80202": {"80202", "Denver", "CO", "Denver", 39.7525, -104.9995},
	"84101": {"84101", "Salt Lake City", "UT", "Salt Lake", 40.7566, -111.8990},
	"85004": {"85004", "Phoenix", "AZ", "Maricopa", 33.4515, -112.0686},
	"87102": {"87102", "Albuquerque", "NM", "Bernalillo", 35.0820, -106.6485},
	"89101": {"89101", "Las Vegas", "NV", "Clark", 36.1721, -115.1228},
	"90001": {"90001", "Los Angeles", "CA", "Los Angeles", 33.9731, -118.2479},
	"90210": {"90210", "Beverly Hills", "CA", "Los Angeles", 34.0901, -118.4065},
	"92101": {"92101", "San Diego", "CA", "San Diego", 32.7194, -117.1628},
	"94102": {"94102", "San Francisco", "CA", "San Francisco", 37.7793, -122.4193},
	"95814": {"95814", "Sacramento", "CA", "Sacramento", 38.5804, -121.4922},
	"97201": {"97201", "Portland", "OR", "Multnomah", 45.5075, -122.6906},
	"98101": {"98101", "Seattle", "WA", "King", 47.6114, -122.3305},
}

// LookupEmbedded returns a ZIP from the built-in table.
func LookupEmbedded(zip string) (Location, bool) {
	loc, ok := majorZips[zip]
	return loc, ok
}
