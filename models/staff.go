package models

import "time"

// StaffPerformance aggregates completed work and ratings for one staff member.
type StaffPerformance struct {
	ServicesCompleted int     `bson:"servicesCompleted" json:"servicesCompleted"`
	RevenueGenerated  float64 `bson:"revenueGenerated" json:"revenueGenerated"`
	TotalRatings      int     `bson:"totalRatings" json:"totalRatings"`
	AverageRating     float64 `bson:"averageRating" json:"averageRating"`
}

// Staff is an employee working at a branch. The login account lives in the
// users collection; UserID links the two.
type Staff struct {
	ID          string           `bson:"id" json:"id"`
	TenantID    string           `bson:"tenantId" json:"tenantId"`
	UserID      string           `bson:"userId" json:"userId"`
	BranchID    string           `bson:"branchId" json:"branchId"`
	Name        string           `bson:"name" json:"name"`
	Role        string           `bson:"role" json:"role"`
	ShiftStart  string           `bson:"shiftStart,omitempty" json:"shiftStart,omitempty"`
	ShiftEnd    string           `bson:"shiftEnd,omitempty" json:"shiftEnd,omitempty"`
	Salary      float64          `bson:"salary,omitempty" json:"salary,omitempty"`
	JoiningDate time.Time        `bson:"joiningDate" json:"joiningDate"`
	IsActive    bool             `bson:"isActive" json:"isActive"`
	Performance StaffPerformance `bson:"performance" json:"performance"`
	CreatedAt   time.Time        `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time        `bson:"updatedAt" json:"updatedAt"`
}
