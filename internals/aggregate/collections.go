// file: internals/aggregate/collections.go
package aggregate

// Nama collection di document store.
const (
	ColUsers       = "users"
	ColCourses     = "courses"
	ColBatches     = "batches"
	ColRosters     = "rosters"
	ColAttendance  = "attendance"
	ColAssignments = "assignments"
	ColOrders      = "orders"
	ColSettings    = "settings"
	ColOutbox      = "outbox"
)
