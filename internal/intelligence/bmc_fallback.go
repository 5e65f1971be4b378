package intelligence

import "github.com/alexanderramin/incubator/internal/domain"

// GenericFallbackQuestion is used when a section has no dedicated question.
const GenericFallbackQuestion = "حدثنا أكثر عن مشروعك وتفاصيله."

var bmcFallbackQuestions = map[domain.SectionKey]string{
	domain.SectionKeyPartners:           "من هم الشركاء أو الموردون الرئيسيون الذين يحتاجهم مشروعك لينجح؟",
	domain.SectionKeyActivities:         "ما هي أهم الأنشطة التي يجب أن يقوم بها مشروعك يومياً لتقديم قيمته؟",
	domain.SectionValuePropositions:     "ما المشكلة التي يحلها مشروعك، وما الذي يميزه عن البدائل المتاحة؟",
	domain.SectionCustomerRelationships: "كيف ستبني علاقتك مع عملائك وتحافظ عليهم بعد أول عملية شراء؟",
	domain.SectionCustomerSegments:      "من هم عملاؤك المستهدفون بالتحديد؟ صف الفئة الأهم منهم.",
	domain.SectionKeyResources:          "ما الموارد الأساسية (بشرية، مالية، تقنية) التي يحتاجها مشروعك؟",
	domain.SectionChannels:              "عبر أي قنوات ستصل إلى عملائك وتوصل لهم منتجك أو خدمتك؟",
	domain.SectionCostStructure:         "ما هي أكبر التكاليف التي سيتحملها مشروعك؟",
	domain.SectionRevenueStreams:        "كيف سيحقق مشروعك الإيرادات، وكم يرغب العميل أن يدفع؟",
}

// BMCFallbackQuestion returns the canned question for a section.
func BMCFallbackQuestion(key domain.SectionKey) string {
	if q, ok := bmcFallbackQuestions[key]; ok {
		return q
	}
	return GenericFallbackQuestion
}
