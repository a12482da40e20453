package models

// SalesOverview summarizes paid invoice revenue over standard windows.
type SalesOverview struct {
	Daily   float64 `json:"daily"`
	Weekly  float64 `json:"weekly"`
	Monthly float64 `json:"monthly"`
	Total   float64 `json:"total"`
}

// StaffLeaderboardEntry ranks staff by generated revenue.
type StaffLeaderboardEntry struct {
	StaffID       string  `json:"staffId"`
	StaffName     string  `json:"staffName"`
	Revenue       float64 `json:"revenue"`
	ClientsServed int     `json:"clientsServed"`
	AverageRating float64 `json:"averageRating"`
}

// ServicePopularity ranks services by booking volume.
type ServicePopularity struct {
	ServiceID   string  `json:"serviceId"`
	ServiceName string  `json:"serviceName"`
	Bookings    int     `json:"bookings"`
	Revenue     float64 `json:"revenue"`
}

// CustomerInsights splits the client base into new and repeat visitors.
type CustomerInsights struct {
	NewClients    int `json:"newClients"`
	RepeatClients int `json:"repeatClients"`
}

// InventoryAlert flags an item at or below its stock threshold.
type InventoryAlert struct {
	ItemID          string  `json:"itemId"`
	ItemName        string  `json:"itemName"`
	CurrentQuantity float64 `json:"currentQuantity"`
	Threshold       float64 `json:"threshold"`
	Unit            string  `json:"unit"`
	Supplier        string  `json:"supplier,omitempty"`
}
