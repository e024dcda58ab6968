package tables

// Canonical position groups.
const (
	GroupQB    = "QB"
	GroupRB    = "RB"
	GroupWR    = "WR"
	GroupTE    = "TE"
	GroupOL    = "OL"
	GroupDL    = "DL"
	GroupLB    = "LB"
	GroupDB    = "DB"
	GroupST    = "ST"
	GroupOther = "Other"
)

// positionAliases is the closed alias table. Order is the display order.
var positionAliases = []struct { //nolint:gochecknoglobals // static table
	group string
	codes []string
}{
	{GroupQB, []string{"QB"}},
	{GroupRB, []string{"RB", "HB", "FB"}},
	{GroupWR, []string{"WR"}},
	{GroupTE, []string{"TE"}},
	{GroupOL, []string{"C", "G", "OG", "OT", "T", "LT", "RT", "OL"}},
	{GroupDL, []string{"DE", "DT", "DL", "NT", "EDGE"}},
	{GroupLB, []string{"LB", "ILB", "OLB", "MLB"}},
	{GroupDB, []string{"DB", "CB", "S", "FS", "SS", "NB", "SAF"}},
	{GroupST, []string{"K", "P", "PK", "LS"}},
}

// PositionGroups returns the nine canonical groups followed by GroupOther.
func PositionGroups() []string {
	out := make([]string, 0, len(positionAliases)+1)
	for _, a := range positionAliases {
		out = append(out, a.group)
	}
	return append(out, GroupOther)
}

// PositionCodes returns every alias code known for group.
func PositionCodes(group string) []string {
	for _, a := range positionAliases {
		if a.group == group {
			return append([]string(nil), a.codes...)
		}
	}
	return nil
}

func positionIndex() map[string]string {
	idx := make(map[string]string)
	for _, a := range positionAliases {
		for _, code := range a.codes {
			idx[code] = a.group
		}
	}
	return idx
}
