package connection

import "sort"

// rankByPrice orders itineraries by total price. Equal prices keep their input order.
func rankByPrice(its []Itinerary) {
	sort.SliceStable(its, func(i, j int) bool {
		return its[i].TotalPrice < its[j].TotalPrice
	})
}
