package tiers

// DefaultConfig returns the curated dynasty tier tables. Tier 4 is implicit.
func DefaultConfig() Config {
	return Config{Tables: [][]string{
		// 0: elite
		{
			"Ja'Marr Chase", "Justin Jefferson", "CeeDee Lamb", "Puka Nacua",
			"Bijan Robinson", "Jahmyr Gibbs", "Malik Nabers", "Amon-Ra St. Brown",
			"Josh Allen", "Lamar Jackson", "Jayden Daniels", "Joe Burrow",
			"Brock Bowers", "Ashton Jeanty",
		},
		// 1: high
		{
			"Jalen Hurts", "Patrick Mahomes", "C.J. Stroud", "Caleb Williams",
			"Drake Maye", "Drake London", "Garrett Wilson", "Nico Collins",
			"Brian Thomas Jr.", "Jaxon Smith-Njigba", "Ladd McConkey", "Trey McBride",
			"De'Von Achane", "Breece Hall", "Jonathan Taylor", "Saquon Barkley",
			"Tee Higgins", "A.J. Brown", "Omarion Hampton", "Travis Hunter",
		},
		// 2: starter
		{
			"Marvin Harrison Jr.", "Rome Odunze", "DeVonta Smith", "Chris Olave",
			"Jameson Williams", "Zay Flowers", "Tetairoa McMillan", "Sam LaPorta",
			"Tucker Kraft", "Colston Loveland", "Kyren Williams", "Bucky Irving",
			"James Cook", "Chase Brown", "Derrick Henry", "Josh Jacobs",
			"Bo Nix", "Jordan Love", "Kyler Murray", "Brock Purdy",
			"Baker Mayfield", "Justin Herbert", "Dak Prescott", "Jared Goff",
		},
		// 3: depth
		{
			"Davante Adams", "Mike Evans", "Cooper Kupp", "Stefon Diggs",
			"DK Metcalf", "Terry McLaurin", "Courtland Sutton", "Travis Kelce",
			"George Kittle", "Mark Andrews", "David Njoku", "Evan Engram",
			"Alvin Kamara", "Aaron Jones", "Joe Mixon", "James Conner",
			"David Montgomery", "Kenneth Walker III", "Tony Pollard", "Rhamondre Stevenson",
			"Aaron Rodgers", "Matthew Stafford", "Kirk Cousins", "Geno Smith",
		},
	}}
}
