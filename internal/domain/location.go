package domain

// Location is one row of the Thai administrative-area lookup used by the
// address form (province / amphoe / tambon / zipcode).
type Location struct {
	ID       string
	Province string
	Amphoe   string
	Tambon   string
	Zipcode  string
}
