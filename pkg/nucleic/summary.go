package nucleic

// Summary describes a set of records
type Summary struct {
	Records     int
	WithQuality int
	Bases       uint64
	Footprint   int // bytes held by packed buffers
}

// Summarise adds up records
func Summarise(records []*NucleicAcid) Summary {
	var s Summary
	for _, rec := range records {
		s.Records++
		s.Bases += uint64(rec.Len())
		s.Footprint += rec.Footprint()
		if rec.HasQuality() {
			s.WithQuality++
		}
	}
	return s
}
