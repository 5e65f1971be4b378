package domain

type SectionKey string

const (
	SectionKeyPartners           SectionKey = "key_partners"
	SectionKeyActivities         SectionKey = "key_activities"
	SectionValuePropositions     SectionKey = "value_propositions"
	SectionCustomerRelationships SectionKey = "customer_relationships"
	SectionCustomerSegments      SectionKey = "customer_segments"
	SectionKeyResources          SectionKey = "key_resources"
	SectionChannels              SectionKey = "channels"
	SectionCostStructure         SectionKey = "cost_structure"
	SectionRevenueStreams        SectionKey = "revenue_streams"
)

// Section is one block of the Business Model Canvas.
type Section struct {
	Key   SectionKey
	Name  string // canonical English name
	Label string // Arabic label used in prompts and UI
}

var bmcCatalog = [...]Section{
	{Key: SectionKeyPartners, Name: "Key Partners", Label: "الشركاء الرئيسيون"},
	{Key: SectionKeyActivities, Name: "Key Activities", Label: "الأنشطة الرئيسية"},
	{Key: SectionValuePropositions, Name: "Value Propositions", Label: "عروض القيمة"},
	{Key: SectionCustomerRelationships, Name: "Customer Relationships", Label: "العلاقات مع العملاء"},
	{Key: SectionCustomerSegments, Name: "Customer Segments", Label: "شرائح العملاء"},
	{Key: SectionKeyResources, Name: "Key Resources", Label: "الموارد الرئيسية"},
	{Key: SectionChannels, Name: "Channels", Label: "القنوات"},
	{Key: SectionCostStructure, Name: "Cost Structure", Label: "هيكل التكاليف"},
	{Key: SectionRevenueStreams, Name: "Revenue Streams", Label: "مصادر الإيرادات"},
}

// SectionCount is the number of canvas sections.
const SectionCount = len(bmcCatalog)

// Sections returns the canvas sections in walk order.
func Sections() []Section {
	out := make([]Section, SectionCount)
	copy(out, bmcCatalog[:])
	return out
}

// SectionAt returns the section for a progress cursor. The cursor wraps, so any
// non-negative value maps onto the catalog.
func SectionAt(progress int) Section {
	idx := progress % SectionCount
	if idx < 0 {
		idx += SectionCount
	}
	return bmcCatalog[idx]
}
