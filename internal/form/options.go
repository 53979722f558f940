package form

// Choice is one option of a select field
type Choice struct {
	Value string
	Label string
}

// DepartmentOptions are the departments a student can enrol in
var DepartmentOptions = []Choice{
	{Value: "computer-science", Label: "Computer Science"},
	{Value: "electrical-engineering", Label: "Electrical Engineering"},
	{Value: "mechanical-engineering", Label: "Mechanical Engineering"},
	{Value: "civil-engineering", Label: "Civil Engineering"},
	{Value: "business", Label: "Business Administration"},
	{Value: "mathematics", Label: "Mathematics"},
	{Value: "physics", Label: "Physics"},
	{Value: "chemistry", Label: "Chemistry"},
	{Value: "biology", Label: "Biology"},
	{Value: "arts", Label: "Arts & Humanities"},
}

// CountryOptions are the selectable countries
var CountryOptions = []Choice{
	{Value: "India", Label: "India"},
	{Value: "USA", Label: "United States"},
	{Value: "Canada", Label: "Canada"},
	{Value: "UK", Label: "United Kingdom"},
	{Value: "Australia", Label: "Australia"},
	{Value: "Germany", Label: "Germany"},
	{Value: "France", Label: "France"},
	{Value: "China", Label: "China"},
	{Value: "Japan", Label: "Japan"},
	{Value: "Other", Label: "Other"},
}

// LabelFor returns the label of value within opts, or value itself
func LabelFor(opts []Choice, value string) string {
	for _, o := range opts {
		if o.Value == value {
			return o.Label
		}
	}
	return value
}
