package intelligence

import (
	"fmt"
	"strings"
)

// DesignToolsTip closes every templated design answer.
const DesignToolsTip = "💡 نصيحة: يمكنك البدء بأدوات مجانية أو منخفضة التكلفة مثل Canva وFigma وAdobe Express وCoolors لاختيار الألوان وGoogle Fonts للخطوط."

var designPractices = map[Topic][]string{
	TopicLogo: {
		"اجعل الشعار بسيطاً وسهل التذكر.",
		"تأكد من وضوحه بالأبيض والأسود وبالأحجام الصغيرة.",
		"استخدم لونين أو ثلاثة ألوان كحد أقصى.",
		"اختر خطاً يعكس شخصية مشروعك.",
		"جهّز نسخاً أفقية وعمودية وأيقونة مصغرة.",
	},
	TopicWebsite: {
		"ابدأ برسالة واضحة في أعلى الصفحة توضح ما تقدمه.",
		"اجعل التصميم متجاوباً مع الهاتف أولاً.",
		"ضع زر دعوة لاتخاذ إجراء واضحاً في كل صفحة.",
		"حافظ على سرعة التحميل بضغط الصور.",
		"استخدم نفس ألوان وخطوط هويتك البصرية.",
	},
	TopicIdentity: {
		"حدد لوحة ألوان أساسية وثانوية والتزم بها.",
		"اختر خطين كحد أقصى، واحد للعناوين وآخر للنصوص.",
		"اكتب دليل هوية مختصراً يوضح طريقة استخدام الشعار.",
		"وحّد أسلوب الصور والأيقونات في كل المواد.",
	},
	TopicCover: {
		"اجعل العنوان مقروءاً حتى في الصورة المصغرة.",
		"استخدم صورة أو رسمة واحدة قوية بدل عناصر كثيرة.",
		"اترك مساحات فارغة كافية حول العناصر.",
		"تأكد من المقاسات ودقة الطباعة قبل التصدير.",
	},
	TopicSocialMedia: {
		"استخدم قوالب موحدة تحافظ على هوية حسابك.",
		"اجعل الرسالة الأساسية مقروءة خلال ثانيتين.",
		"التزم بالمقاسات الموصى بها لكل منصة.",
		"أضف دعوة واضحة للتفاعل في كل منشور.",
		"خطط لمحتواك أسبوعياً بدل النشر العشوائي.",
	},
	TopicPresentation: {
		"فكرة واحدة لكل شريحة.",
		"قلل النصوص واستخدم الصور والرسوم البيانية.",
		"استخدم خطاً كبيراً وتبايناً واضحاً بين النص والخلفية.",
		"اختم بشريحة تلخص الطلب أو الخطوة التالية.",
	},
	TopicGeneral: {
		"ابدأ بفهم جمهورك المستهدف وما يناسبه.",
		"حافظ على البساطة والاتساق في كل تصاميمك.",
		"اطلب آراء عملاء حقيقيين قبل اعتماد التصميم.",
	},
}

// DesignPractices returns the canned practices for topic, or the general list.
func DesignPractices(topic Topic) []string {
	if p, ok := designPractices[topic]; ok {
		return p
	}
	return designPractices[TopicGeneral]
}

// DeterministicDesignAnswer renders the templated answer for topic: a header,
// the topic practices as bullets and the closing tools tip.
func DeterministicDesignAnswer(topic Topic) string {
	var b strings.Builder
	fmt.Fprintf(&b, "نصائح حول %s:\n\n", topic.Label())
	for _, p := range DesignPractices(topic) {
		fmt.Fprintf(&b, "• %s\n", p)
	}
	b.WriteString("\n")
	b.WriteString(DesignToolsTip)
	return b.String()
}
