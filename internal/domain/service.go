package domain

// Service is a bookable cleaning service offered in a postcode area.
type Service struct {
	ID                  int64
	Name                string
	DurationMinutes     int
	Price               float64
	Currency            *string
	CategoryName        *string
	AvailableStaffCount *int
}

// FindService returns the service with the given id.
func FindService(services []Service, id int64) (Service, bool) {
	for _, s := range services {
		if s.ID == id {
			return s, true
		}
	}
	return Service{}, false
}
