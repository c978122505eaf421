package parking

type Vehicle struct {
	Number   int
	Category Category
}

func NewVehicle(number int, category Category) *Vehicle {
	return &Vehicle{
		Number:   number,
		Category: category,
	}
}
