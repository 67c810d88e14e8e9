package orders

import "event-ticketing-backend/internal/models"

// pending is the only state with outgoing edges; approved and rejected are terminal.
var validNext = map[models.OrderStatus]map[models.OrderStatus]bool{
	models.StatusPending:  {models.StatusApproved: true, models.StatusRejected: true},
	models.StatusApproved: {},
	models.StatusRejected: {},
}

func CanTransition(from, to models.OrderStatus) bool {
	return validNext[from][to]
}
