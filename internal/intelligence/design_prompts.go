package intelligence

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/incubator/internal/domain"
)

const designSystemPrompt = `أنت مستشار تصميم في حاضنة أعمال طلابية. تساعد رواد الأعمال الطلاب على تصميم ما يحتاجه مشروعهم بميزانية محدودة.

القواعد:
1. أجب باللغة العربية وبأسلوب عملي ومشجع.
2. قدم نصائح محددة قابلة للتطبيق مباشرة، في نقاط قصيرة.
3. اقترح أدوات مجانية أو منخفضة التكلفة عندما يكون ذلك مناسباً.
4. ركز على موضوع السؤال ولا تخرج عنه.`

// BuildDesignPrompt returns the advisory user prompt for a classified message.
// The last turn of recent is expected to be the message itself and is skipped.
func BuildDesignPrompt(topic Topic, message string, recent []domain.Turn) string {
	var b strings.Builder
	fmt.Fprintf(&b, "الموضوع: %s\n", topic.Label())
	if n := len(recent); n > 1 {
		b.WriteString("\nسياق المحادثة:\n")
		for _, t := range recent[:n-1] {
			fmt.Fprintf(&b, "- %s: %s\n", roleLabel(t.Role), t.Content)
		}
	}
	fmt.Fprintf(&b, "\nسؤال الطالب: %s\n\nقدم نصيحة تصميم عملية حول %s.", message, topic.Label())
	return b.String()
}
