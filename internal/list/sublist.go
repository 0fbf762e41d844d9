package list

import (
	"github.com/tkingovr/chatguard/api"
	"github.com/tkingovr/chatguard/internal/action"
	"github.com/tkingovr/chatguard/internal/validation"
)

// Defaults are the partition-wide validation rules and action settings,
// shared by every filter in the partition.
type Defaults struct {
	Actions     *action.Settings
	Validations *validation.Set
}

// SubList is one partition (deny or allow) of a filter list: its filters
// plus the defaults they share. Built once at configuration load, read-only
// during dispatch.
type SubList struct {
	Type     api.ListType
	Filters  []*Filter
	Defaults Defaults
}
