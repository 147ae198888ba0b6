// Package models defines the records produced by the scraper.
package models

import "strconv"

// Column labels shared by every output sink.
const (
	ColumnID       = "ID"
	ColumnLink     = "Agency Link"
	ColumnAgency   = "Agency"
	ColumnServices = "Services"
	ColumnAddress  = "Address"
	ColumnPhone    = "Phone"
	ColumnHours    = "Hours"
)

// FieldColumns is the shared field list, in output order.
var FieldColumns = []string{ColumnLink, ColumnAgency, ColumnServices, ColumnAddress, ColumnPhone, ColumnHours}

// TableHeader is the tabular header: the synthetic ID followed by FieldColumns.
var TableHeader = append([]string{ColumnID}, FieldColumns...)

// Agency is one agency detail page reduced to its six text fields.
// IDs are not stored; sinks derive them from list position.
type Agency struct {
	Link     string `json:"Agency Link"`
	Name     string `json:"Agency"`
	Services string `json:"Services"`
	Address  string `json:"Address"`
	Phone    string `json:"Phone"`
	Hours    string `json:"Hours"`
}

// Fields returns the record values in FieldColumns order.
func (a Agency) Fields() []string {
	return []string{a.Link, a.Name, a.Services, a.Address, a.Phone, a.Hours}
}

// Row returns a tabular row for the record at the given 1-based position.
func (a Agency) Row(id int) []string {
	return append([]string{strconv.Itoa(id)}, a.Fields()...)
}

// AgencyFromFields builds a record from values in FieldColumns order.
// Missing trailing values are left empty.
func AgencyFromFields(values []string) Agency {
	get := func(i int) string {
		if i < len(values) {
			return values[i]
		}

		return ""
	}

	return Agency{
		Link:     get(0),
		Name:     get(1),
		Services: get(2),
		Address:  get(3),
		Phone:    get(4),
		Hours:    get(5),
	}
}
