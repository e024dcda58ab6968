// Package tables holds the static lookup tables the builders classify with:
// college to conference, slug overrides, and position aliases.
package tables

// FallbackConference is used for every college missing from the table.
const FallbackConference = "FCS / Other"

// UnknownCollege stands in for an empty college name.
const UnknownCollege = "Unknown"

// Conference labels.
const (
	ConfSEC         = "SEC"
	ConfBigTen      = "Big Ten"
	ConfBig12       = "Big 12"
	ConfACC         = "ACC"
	ConfAAC         = "AAC"
	ConfMountainW   = "Mountain West"
	ConfSunBelt     = "Sun Belt"
	ConfMAC         = "MAC"
	ConfCUSA        = "C-USA"
	ConfIndependent = "Independent"
)

// defaultGroupPriority is the home page order of conference groups.
func defaultGroupPriority() []string {
	return []string{
		ConfSEC, ConfBigTen, ConfBig12, ConfACC, ConfAAC, ConfMountainW,
		ConfSunBelt, ConfMAC, ConfCUSA, ConfIndependent, FallbackConference,
	}
}

func defaultSlugOverrides() map[string]string {
	return map[string]string{
		"Alabama": "ala",
		"BYU":     "byu",
	}
}

// defaultConferences lists the 134 FBS programs of the 2025 season. Keys must
// match the college display names in the roster exactly.
func defaultConferences() map[string]string {
	byConf := map[string][]string{
		ConfACC: {
			"Boston College", "California", "Clemson", "Duke", "Florida State",
			"Georgia Tech", "Louisville", "Miami (FL)", "North Carolina", "NC State",
			"Pittsburgh", "SMU", "Stanford", "Syracuse", "Virginia", "Virginia Tech",
			"Wake Forest",
		},
		ConfBigTen: {
			"Illinois", "Indiana", "Iowa", "Maryland", "Michigan", "Michigan State",
			"Minnesota", "Nebraska", "Northwestern", "Ohio State", "Oregon",
			"Penn State", "Purdue", "Rutgers", "UCLA", "USC", "Washington", "Wisconsin",
		},
		ConfBig12: {
			"Arizona", "Arizona State", "Baylor", "BYU", "Cincinnati", "Colorado",
			"Houston", "Iowa State", "Kansas", "Kansas State", "Oklahoma State", "TCU",
			"Texas Tech", "UCF", "Utah", "West Virginia",
		},
		ConfSEC: {
			"Alabama", "Arkansas", "Auburn", "Florida", "Georgia", "Kentucky", "LSU",
			"Mississippi State", "Missouri", "Oklahoma", "Ole Miss", "South Carolina",
			"Tennessee", "Texas", "Texas A&M", "Vanderbilt",
		},
		ConfAAC: {
			"Army", "Charlotte", "East Carolina", "Florida Atlantic", "Memphis", "Navy",
			"North Texas", "Rice", "South Florida", "Temple", "Tulane", "Tulsa", "UTSA",
			"UAB",
		},
		ConfCUSA: {
			"FIU", "Jacksonville State", "Kennesaw State", "Liberty", "Louisiana Tech",
			"Middle Tennessee", "New Mexico State", "Sam Houston", "UTEP",
			"Western Kentucky", "Delaware", "Missouri State",
		},
		ConfMAC: {
			"Akron", "Ball State", "Bowling Green", "Buffalo", "Central Michigan",
			"Eastern Michigan", "Kent State", "Miami (OH)", "Northern Illinois", "Ohio",
			"Toledo", "Western Michigan",
		},
		ConfMountainW: {
			"Air Force", "Boise State", "Colorado State", "Fresno State", "Hawai’i",
			"Nevada", "New Mexico", "San Diego State", "San José State", "UNLV",
			"Utah State", "Wyoming",
		},
		ConfSunBelt: {
			"Appalachian State", "Arkansas State", "Coastal Carolina", "Georgia Southern",
			"Georgia State", "James Madison", "Louisiana", "Marshall", "Old Dominion",
			"South Alabama", "Southern Miss", "Texas State", "Troy", "ULM",
		},
		ConfIndependent: {
			"UConn", "UMass", "Notre Dame",
		},
	}

	out := make(map[string]string, 134)
	for conf, colleges := range byConf {
		for _, c := range colleges {
			out[c] = conf
		}
	}
	return out
}
