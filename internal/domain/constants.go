package domain

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Subscription limits
const (
	MinSubscriptionMonths = 1
	MaxSubscriptionMonths = 12
)

// DefaultOrderQuantity is used when an order item is added without a quantity.
const DefaultOrderQuantity = 1

// Guest details limits
const (
	MaxGuestNameLength = 120
	MaxAddressLength   = 300
	MaxNotesLength     = 500
)

// Week grid time axis. Appointments starting outside [GridFirstHour, GridLastHour] are not shown.
const (
	GridFirstHour = 6
	GridLastHour  = 20
	DaysInWeek    = 7
)

// DatePageWeeks is how far the booking date picker pages at a time.
const DatePageWeeks = 4

// MaxOrderQuantity caps the quantity of one order line.
const MaxOrderQuantity = 10
