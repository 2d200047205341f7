package worldbank

import "fmt"

// Indicator is one entry of a source's indicator catalog.
type Indicator struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Ref is an id/value pair, the API's representation of the indicator and
// country attached to an observation.
type Ref struct {
	ID    string `json:"id"`
	Value string `json:"value"`
}

// Observation is one data point for an indicator and country. Value is nil
// when the API reports the cell as null.
type Observation struct {
	Indicator Ref      `json:"indicator"`
	Country   Ref      `json:"country"`
	ISO3      string   `json:"countryiso3code"`
	Date      string   `json:"date"`
	Value     *float64 `json:"value"`
}

// DateRange is an inclusive year range, rendered as the API's date parameter.
type DateRange struct {
	Start int
	End   int
}

// String formats the range as "START:END".
func (r DateRange) String() string {
	return fmt.Sprintf("%d:%d", r.Start, r.End)
}
