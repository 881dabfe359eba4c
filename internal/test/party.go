package test

import (
	"github.com/WeBankBlockchain/WeDPR-Lab-Core-sub000/pkg/party"
)

// CounterIDs returns a party.IDSlice (sorted) with IDs represented as simple strings.
func CounterIDs(n int) party.IDSlice {
	baseString := ""
	ids := make([]party.ID, n)
	for i := range ids {
		if i%26 == 0 && i > 0 {
			baseString += "a"
		}
		ids[i] = party.ID(baseString + string('a'+rune(i%26)))
	}
	return party.NewIDSlice(ids)
}
