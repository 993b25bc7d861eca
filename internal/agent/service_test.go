package agent

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/revozen-chatbot/server/internal/agent/extract"
	"github.com/revozen-chatbot/server/internal/agent/intents"
	agentmodel "github.com/revozen-chatbot/server/internal/agent/model"
	"github.com/revozen-chatbot/server/internal/agent/session"
)

// scriptedModel answers each question with the canned extraction keyed by a
// substring of the prompt, standing in for the extract model.
type scriptedModel struct {
	replies map[string]string
}

func (s *scriptedModel) Generate(_ context.Context, input []*schema.Message, _ ...model.Option) (*schema.Message, error) {
	prompt := input[len(input)-1].Content
	for needle, reply := range s.replies {
		if strings.Contains(prompt, needle) {
			return schema.AssistantMessage(reply, nil), nil
		}
	}
	return nil, fmt.Errorf("no scripted reply for prompt")
}

type staticTyreFinder struct {
	tyres []agentmodel.Tyre
}

func (f *staticTyreFinder) FindBySize(_ context.Context, size string) ([]agentmodel.Tyre, error) {
	var out []agentmodel.Tyre
	for _, t := range f.tyres {
		for _, st := range t.Stock {
			if st.Size == size {
				out = append(out, t)
				break
			}
		}
	}
	return out, nil
}

func (f *staticTyreFinder) FindByBrand(_ context.Context, brand string) ([]agentmodel.Tyre, error) {
	var out []agentmodel.Tyre
	for _, t := range f.tyres {
		if brand == "" || strings.EqualFold(t.Brand, brand) {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *staticTyreFinder) FindTubeless(_ context.Context, brand string) ([]agentmodel.Tyre, error) {
	var out []agentmodel.Tyre
	for _, t := range f.tyres {
		if !strings.Contains(strings.ToLower(t.Type), "tubeless") {
			continue
		}
		if brand != "" && !strings.EqualFold(t.Brand, brand) {
			continue
		}
		out = append(out, t)
	}
	return out, nil
}

type noOrders struct{}

func (noOrders) FindOrders(context.Context, []primitive.ObjectID, *agentmodel.DateWindow) ([]agentmodel.Order, error) {
	return nil, nil
}

func newTestService(replies map[string]string) *AskService {
	tyres := []agentmodel.Tyre{
		{
			ID: primitive.NewObjectID(), Brand: "MRF", Model: "ZLX", Type: "tubeless",
			Stock: []agentmodel.StockItem{{Size: "195/65R15", Quantity: 8, Price: 4200}},
		},
		{
			ID: primitive.NewObjectID(), Brand: "CEAT", Model: "Milaze", Type: "tube",
			Stock: []agentmodel.StockItem{{Size: "195/65R15", Quantity: 4, Price: 3600}},
		},
	}
	extractor := extract.New(&scriptedModel{replies: replies})
	answerer := intents.NewAnswerer(&staticTyreFinder{tyres: tyres}, noOrders{})
	return NewAskService(extractor, session.NewMemoryStore(), answerer)
}

func TestAskCountTypesBySize(t *testing.T) {
	svc := newTestService(map[string]string{
		"How many types": `{"intent": "count_type_by_size", "size": "195/65R15"}`,
	})

	msg, err := svc.Ask(context.Background(), "How many types of tyre are used for size 195/65R15?", "")
	require.NoError(t, err)
	assert.Equal(t, "There are 2 types of tyre used for size 195/65R15 in the inventory.", msg)
}

func TestAskFollowUpReusesBrandFromSession(t *testing.T) {
	svc := newTestService(map[string]string{
		"What MRF models":         `{"intent": "list_models", "brand": "MRF"}`,
		"what sizes do they have": `{"intent": "list_sizes"}`,
	})
	ctx := context.Background()

	msg, err := svc.Ask(ctx, "What MRF models do we have?", "sess-1")
	require.NoError(t, err)
	assert.Equal(t, "Models available for MRF: ZLX.", msg)

	// the follow-up omits the brand; the session context supplies it
	msg, err = svc.Ask(ctx, "what sizes do they have", "sess-1")
	require.NoError(t, err)
	assert.Contains(t, msg, "Model ZLX (MRF): Sizes 195/65R15")
}

func TestAskAnonymousTurnKeepsNoContext(t *testing.T) {
	svc := newTestService(map[string]string{
		"What MRF models":         `{"intent": "list_models", "brand": "MRF"}`,
		"what sizes do they have": `{"intent": "list_sizes"}`,
	})
	ctx := context.Background()

	_, err := svc.Ask(ctx, "What MRF models do we have?", "")
	require.NoError(t, err)

	// without a session, the follow-up has no brand and lists everything
	msg, err := svc.Ask(ctx, "what sizes do they have", "")
	require.NoError(t, err)
	assert.Contains(t, msg, "Model ZLX (MRF)")
	assert.Contains(t, msg, "Model Milaze (CEAT)")
}

func TestAskUnusableExtractionIsNotUnderstood(t *testing.T) {
	svc := newTestService(map[string]string{
		"gibberish": "I have no idea what that means.",
	})

	msg, err := svc.Ask(context.Background(), "gibberish", "sess-1")
	require.NoError(t, err)
	assert.Equal(t, NotUnderstoodMessage, msg)
}

func TestAskRegexOverrideBeatsStatedIntent(t *testing.T) {
	// the model claims list_sizes, but the question clearly asks for a count
	svc := newTestService(map[string]string{
		"how many types": `{"intent": "list_sizes", "size": "195/65R15"}`,
	})

	msg, err := svc.Ask(context.Background(), "how many types are there for 195/65R15?", "")
	require.NoError(t, err)
	assert.Equal(t, "There are 2 types of tyre used for size 195/65R15 in the inventory.", msg)
}
