// Package layout defines the fixed-width roster interchange records.
// Positions are 1-based and inclusive, counted in characters.
//
//	RH  header   title, generation date, record count, filter
//	RD  detail   one per employee, in roster order
//	RT  trailer  counts and salary total
package layout

const RecordLen = 120

type Field struct {
	Name        string
	Start       int
	End         int
	Type        FieldType
	Description string
}

func (f Field) Len() int { return f.End - f.Start + 1 }

type FieldType int

const (
	Alpha   FieldType = iota // left-justified, space-filled, uppercase
	Numeric                  // right-justified, zero-filled digits only
	Money                    // zero-padded cents, no decimal point
	Fixed                    // literal constant
	Blank                    // must be spaces
)

// Record identifiers.
const (
	Header  = "RH"
	Detail  = "RD"
	Trailer = "RT"
)

// Status codes written in the StatusCode and FilterStatus fields.
const (
	StatusActive   = "A"
	StatusInactive = "I"
)

var RH = []Field{
	{Name: "RecordIdentifier", Start: 1, End: 2, Type: Fixed, Description: "Constant 'RH'"},
	{Name: "Title", Start: 3, End: 42, Type: Alpha, Description: "Report title"},
	{Name: "GeneratedDate", Start: 43, End: 50, Type: Numeric, Description: "YYYYMMDD"},
	{Name: "RecordCount", Start: 51, End: 57, Type: Numeric, Description: "Number of RD records"},
	{Name: "FilterName", Start: 58, End: 87, Type: Alpha, Description: "Name substring filter, blank when unconstrained"},
	{Name: "FilterDepartment", Start: 88, End: 107, Type: Alpha, Description: "Department filter, blank when unconstrained"},
	{Name: "FilterStatus", Start: 108, End: 108, Type: Alpha, Description: "A, I or blank"},
	{Name: "Blank109", Start: 109, End: 120, Type: Blank, Description: "Reserved"},
}

var RD = []Field{
	{Name: "RecordIdentifier", Start: 1, End: 2, Type: Fixed, Description: "Constant 'RD'"},
	{Name: "EmployeeID", Start: 3, End: 11, Type: Numeric},
	{Name: "Name", Start: 12, End: 51, Type: Alpha},
	{Name: "Department", Start: 52, End: 71, Type: Alpha},
	{Name: "Role", Start: 72, End: 101, Type: Alpha},
	{Name: "Salary", Start: 102, End: 113, Type: Money, Description: "Cents"},
	{Name: "StatusCode", Start: 114, End: 114, Type: Alpha, Description: "A or I"},
	{Name: "Blank115", Start: 115, End: 120, Type: Blank, Description: "Reserved"},
}

var RT = []Field{
	{Name: "RecordIdentifier", Start: 1, End: 2, Type: Fixed, Description: "Constant 'RT'"},
	{Name: "TotalRecords", Start: 3, End: 9, Type: Numeric},
	{Name: "ActiveRecords", Start: 10, End: 16, Type: Numeric},
	{Name: "TotalSalary", Start: 17, End: 31, Type: Money, Description: "Cents"},
	{Name: "Blank32", Start: 32, End: 120, Type: Blank, Description: "Reserved"},
}

// Find returns the field called name, or false.
func Find(fields []Field, name string) (Field, bool) {
	for _, f := range fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}
