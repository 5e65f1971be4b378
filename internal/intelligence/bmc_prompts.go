package intelligence

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/incubator/internal/domain"
)

const bmcSystemPrompt = `أنت مرشد في حاضنة أعمال طلابية تساعد الطالب على بناء نموذج العمل التجاري (Business Model Canvas) خطوة بخطوة.

القواعد:
1. اطرح سؤالاً واحداً فقط، واضحاً ومباشراً، باللغة العربية.
2. يجب أن يتعلق السؤال بالقسم المحدد فقط.
3. استفد من إجابات الطالب السابقة إن وجدت، ولا تكرر سؤالاً أجاب عنه.
4. لا تضف مقدمات أو شروحات أو قوائم، اكتب السؤال وحده.`

// BuildBMCPrompt returns the user prompt asking for one question about section,
// with the recent transcript as context.
func BuildBMCPrompt(section domain.Section, recent []domain.Turn) string {
	var b strings.Builder
	fmt.Fprintf(&b, "القسم الحالي: %s (%s)\n", section.Label, section.Name)
	if len(recent) > 0 {
		b.WriteString("\nآخر ما دار في المحادثة:\n")
		for _, t := range recent {
			fmt.Fprintf(&b, "- %s: %s\n", roleLabel(t.Role), t.Content)
		}
	}
	fmt.Fprintf(&b, "\nاكتب سؤالاً واحداً واضحاً ومباشراً للطالب عن \"%s\" في مشروعه.", section.Label)
	return b.String()
}

func roleLabel(r domain.Role) string {
	if r == domain.RoleUser {
		return "الطالب"
	}
	return "المرشد"
}
