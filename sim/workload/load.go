package workload

import "fmt"

// Load is one basket of laundry moving through the facility.
type Load struct {
	ClientID    int
	BasketID    int
	Type        string
	ArrivalTime float64 // simulated minute the basket was delivered
}

// NewLoad creates a load delivered at the given time.
func NewLoad(clientID, basketID int, laundryType string, arrival float64) *Load {
	return &Load{ClientID: clientID, BasketID: basketID, Type: laundryType, ArrivalTime: arrival}
}

func (l *Load) String() string {
	return fmt.Sprintf("Basket %d (%s, client %d)", l.BasketID, l.Type, l.ClientID)
}

// Sink accepts delivered loads. The facility implements it.
type Sink interface {
	Enqueue(load *Load)
}
