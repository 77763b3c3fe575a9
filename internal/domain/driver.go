package domain

const defaultDriverRating float32 = 5.0

// Driver operates a (non-autonomous) taxi.
type Driver struct {
	ID            string
	Name          string
	LicenseNumber string
	Rating        float32
}

func NewDriver(id, name, licenseNumber string) *Driver {
	return &Driver{
		ID:            id,
		Name:          name,
		LicenseNumber: licenseNumber,
		Rating:        defaultDriverRating,
	}
}
