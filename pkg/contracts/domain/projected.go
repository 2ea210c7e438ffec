package domain

// ProjectedRecord is one classified record restricted to the columns of its
// assigned filer type. Values is aligned to the variable column set of the
// owning ProjectedSet; nil marks a missing value.
type ProjectedRecord struct {
	RSSDID int64
	Values []*string
}

// ProjectedSet holds every projected record of one filer type produced from
// one filing. All records share the same variable column set, computed from
// the filing header, so absent values stay addressable as nulls.
type ProjectedSet struct {
	FilerType FilerType
	Period    Period
	// Variables lists the retained variable columns in their deterministic
	// (alphabetical) output order.
	Variables []string
	Records   []ProjectedRecord
}
