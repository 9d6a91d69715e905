package domain

// AuthorityType is the level of government or utility offering an incentive.
type AuthorityType string

const (
	AuthorityFederal    AuthorityType = "federal"
	AuthorityState      AuthorityType = "state"
	AuthorityUtility    AuthorityType = "utility"
	AuthorityGasUtility AuthorityType = "gas_utility"
	AuthorityCounty     AuthorityType = "county"
	AuthorityCity       AuthorityType = "city"
	AuthorityOther      AuthorityType = "other"
)

// AmountType describes how Amount.Number is to be read.
type AmountType string

const (
	AmountDollars        AmountType = "dollar_amount"
	AmountPercent        AmountType = "percent"
	AmountDollarsPerUnit AmountType = "dollars_per_unit"
)

// Amount is the monetary value of an incentive as reported by the rebate
// provider. Maximum and Representative are optional.
type Amount struct {
	Type           AmountType `json:"type"`
	Number         float64    `json:"number"`
	Maximum        *float64   `json:"maximum,omitempty"`
	Representative *float64   `json:"representative,omitempty"`
	Unit           string     `json:"unit,omitempty"`
}

// Incentive is one rebate, tax credit or discount returned by the rebate
// provider. It is held in memory for a single lookup and never persisted.
type Incentive struct {
	AuthorityType    AuthorityType `json:"authority_type"`
	AuthorityName    *string       `json:"authority_name"`
	Program          string        `json:"program"`
	ProgramURL       string        `json:"program_url,omitempty"`
	Items            []string      `json:"items"`
	Amount           Amount        `json:"amount"`
	PaymentMethods   []string      `json:"payment_methods,omitempty"`
	ShortDescription string        `json:"short_description,omitempty"`
	Eligible         bool          `json:"eligible"`
}

// CategoryType is one of the four closed rebate categories.
type CategoryType string

const (
	CategoryHVAC                     CategoryType = "hvac"
	CategoryWaterHeater              CategoryType = "waterHeater"
	CategoryTransportation           CategoryType = "transportation"
	CategoryEfficiencyWeatherization CategoryType = "efficiencyWeatherization"
)

// RebateCategory is a display bucket of incentives. The same incentive may
// appear in several buckets when its items span categories.
type RebateCategory struct {
	Type       CategoryType `json:"type"`
	Name       string       `json:"name"`
	Incentives []Incentive  `json:"incentives"`
}

// RebateQuery carries the household facts sent to the rebate provider.
type RebateQuery struct {
	Zip             string   `validate:"required,len=5,numeric"`
	OwnerStatus     string   `validate:"required,oneof=homeowner renter"`
	HouseholdIncome float64  `validate:"gte=0"`
	TaxFiling       string   `validate:"required,oneof=single joint hoh"`
	HouseholdSize   int      `validate:"required,gte=1,lte=8"`
	Utility         string   `validate:"omitempty,max=64"`
	GasUtility      string   `validate:"omitempty,max=64"`
	Language        string   `validate:"required,oneof=en es"`
	Items           []string `validate:"required,min=1,dive,required"`
}
