package model

// Branch represents a physical venue location. A branch contains multiple
// themes and staff schedules. This struct corresponds to a row in the
// `branches` table.
//
// Fields:
//  ID       – primary key identifier.
//  Name     – unique branch name.
//  Location – address or free-form location description.
//  Phone    – branch contact number.
//  IsActive – whether the branch is open for business.
type Branch struct {
    ID       uint64 // branches.id
    Name     string // branches.name
    Location string // branches.location
    Phone    string // branches.phone
    IsActive bool   // branches.is_active
}
