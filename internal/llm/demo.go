package llm

import (
	"encoding/json"
	"sync/atomic"
)

// demoLessons are served by the "mock" provider so the app can be tried
// without an API key. They rotate on every request.
var demoLessons = []string{
	`{
  "words": ["journey", "gentle", "borrow", "bright", "arrive"],
  "sentences": [
    {"english": "Our journey to the coast took six hours.", "arabic": "استغرقت رحلتنا إلى الساحل ست ساعات."},
    {"english": "She has a gentle voice.", "arabic": "لديها صوت لطيف."},
    {"english": "Can I borrow your pen for a minute?", "arabic": "هل يمكنني استعارة قلمك لدقيقة؟"},
    {"english": "The morning sun is very bright today.", "arabic": "شمس الصباح ساطعة جدا اليوم."},
    {"english": "The train will arrive at noon.", "arabic": "سيصل القطار عند الظهر."},
    {"english": "Every journey begins with a single step.", "arabic": "كل رحلة تبدأ بخطوة واحدة."},
    {"english": "Be gentle with the little kitten.", "arabic": "كن لطيفا مع القطة الصغيرة."},
    {"english": "He had to borrow money from his brother.", "arabic": "اضطر إلى اقتراض المال من أخيه."},
    {"english": "They painted the room a bright yellow.", "arabic": "طلوا الغرفة باللون الأصفر الساطع."},
    {"english": "Please call me when you arrive home.", "arabic": "من فضلك اتصل بي عندما تصل إلى المنزل."}
  ]
}`,
	`{
  "words": ["habit", "quiet", "explain", "careful", "share", "early"],
  "sentences": [
    {"english": "Reading before bed is a good habit.", "arabic": "القراءة قبل النوم عادة جيدة."},
    {"english": "The library is always quiet.", "arabic": "المكتبة هادئة دائما."},
    {"english": "Can you explain this word to me?", "arabic": "هل يمكنك أن تشرح لي هذه الكلمة؟"},
    {"english": "Be careful when you cross the street.", "arabic": "كن حذرا عندما تعبر الشارع."},
    {"english": "We share a small flat in the city.", "arabic": "نتشارك شقة صغيرة في المدينة."},
    {"english": "I wake up early on weekdays.", "arabic": "أستيقظ مبكرا في أيام الأسبوع."},
    {"english": "Breaking a bad habit takes time.", "arabic": "التخلص من عادة سيئة يستغرق وقتا."},
    {"english": "The teacher will explain the rules again.", "arabic": "سيشرح المعلم القواعد مرة أخرى."},
    {"english": "She is careful with her money.", "arabic": "هي حريصة على أموالها."},
    {"english": "The children share their toys.", "arabic": "يتشارك الأطفال ألعابهم."}
  ]
}`,
}

const demoTip = `{"tip": "أحسنت! حاول أن تنطق كل كلمة ببطء ووضوح، وركز على نهايات الكلمات."}`

// NewDemoProvider returns a MockProvider answering lesson requests with
// sample lessons and feedback requests with a fixed tip.
func NewDemoProvider() *MockProvider {
	var n atomic.Uint64
	return NewMockProvider().WithResponder(func(req Request) MockResponse {
		if req.Schema != nil && req.Schema.Name == "pronunciation-tip" {
			return MockResponse{Content: json.RawMessage(demoTip)}
		}
		i := (n.Add(1) - 1) % uint64(len(demoLessons))
		return MockResponse{Content: json.RawMessage(demoLessons[i])}
	})
}
