package equipment

// Equipment is a bookable physical item held in finite quantity.
type Equipment struct {
	ID                int64
	Name              string
	TotalQuantity     int
	AvailableQuantity int
	Condition         string
}
