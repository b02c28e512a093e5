package chat

import (
	"context"
	"math/rand"
	"strings"
	"time"

	"asthmacare/internal/platform/metrics"
)

// Responder genera la respuesta del asistente. history llega en orden
// cronológico; las implementaciones pueden ignorarla.
type Responder interface {
	Respond(ctx context.Context, message string, history []Message) (string, error)
}

// keywordGroup: el primer grupo cuyo keyword aparezca en el mensaje gana.
type keywordGroup struct {
	keywords []string
	response string
}

// El orden importa: emergency va primero siempre.
var responseGroups = []keywordGroup{
	{
		keywords: []string{"emergency", "can't breathe", "severe"},
		response: "If you are having severe difficulty breathing, use your rescue inhaler now and call your local emergency services immediately. Do not wait for symptoms to pass on their own.",
	},
	{
		keywords: []string{"inhaler", "medication"},
		response: "Take your controller medication every day as prescribed, even when you feel well. Keep your rescue inhaler with you, and check the expiry date and remaining doses regularly.",
	},
	{
		keywords: []string{"trigger", "allergen"},
		response: "Common asthma triggers include dust mites, pollen, pet dander, smoke and cold air. Try logging your symptoms together with what you were exposed to, so you can spot and avoid your personal triggers.",
	},
	{
		keywords: []string{"exercise", "activity"},
		response: "Exercise is good for most people with asthma. Warm up gradually, keep your rescue inhaler nearby, and consider using it 15 minutes before activity if your doctor recommended that.",
	},
	{
		keywords: []string{"air quality", "pollution"},
		response: "On days with poor air quality, limit time outdoors, keep windows closed and plan activities for when pollution is lower. Check the air quality screen before heading out.",
	},
	{
		keywords: []string{"stress", "anxiety"},
		response: "Stress and anxiety can make asthma symptoms worse. Slow breathing exercises, regular sleep and short relaxation breaks can help. Talk to your doctor if stress is a frequent trigger for you.",
	},
	{
		keywords: []string{"diet", "food"},
		response: "A balanced diet rich in fruit and vegetables supports lung health. Some people have food-related triggers; if you suspect one, keep a food log and discuss it with your doctor.",
	},
}

const defaultResponse = "I'm here to help with your asthma questions. You can ask me about medication, triggers, exercise, air quality, stress or diet, and remember to log your symptoms regularly."

// MockResponder responde con textos fijos por keyword, con una latencia
// simulada para emular un servicio real. Ignora history (stateless).
// Una misma instancia atiende requests concurrentes: el jitter usa la
// fuente global de math/rand, que ya viene con lock.
type MockResponder struct {
	MinDelay time.Duration
	MaxDelay time.Duration
}

func NewMockResponder(minDelay, maxDelay time.Duration) *MockResponder {
	if minDelay < 0 {
		minDelay = 0
	}
	if maxDelay < minDelay {
		maxDelay = minDelay
	}
	return &MockResponder{
		MinDelay: minDelay,
		MaxDelay: maxDelay,
	}
}

func (m *MockResponder) Respond(ctx context.Context, message string, _ []Message) (string, error) {
	if err := m.simulateLatency(ctx); err != nil {
		return "", err
	}
	metrics.ChatResponses.WithLabelValues("mock").Inc()
	return Match(message), nil
}

// Match evalúa los grupos en orden y devuelve la primera respuesta
// cuyo keyword aparezca como substring del mensaje (case-insensitive).
func Match(message string) string {
	msg := strings.ToLower(message)
	for _, g := range responseGroups {
		for _, kw := range g.keywords {
			if strings.Contains(msg, kw) {
				return g.response
			}
		}
	}
	return defaultResponse
}

func (m *MockResponder) simulateLatency(ctx context.Context) error {
	delay := m.MinDelay
	if span := m.MaxDelay - m.MinDelay; span > 0 {
		delay += time.Duration(rand.Int63n(int64(span)))
	}
	if delay <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
