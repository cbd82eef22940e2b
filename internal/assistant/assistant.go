// Package assistant produces replies for the storefront chat.
package assistant

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// ErrUnavailable reports that a responder could not produce a reply.
var ErrUnavailable = errors.New("assistant unavailable")

// Turn is one earlier exchange in a conversation.
type Turn struct {
	User      string
	Assistant string
}

type Responder interface {
	Reply(ctx context.Context, prompt string, history []Turn) (string, error)
}

const SystemPrompt = `You are a helpful solar energy assistant for SolarSavers, an e-commerce platform selling solar power systems in India.
You help customers understand:
- Solar system sizing for homes and businesses
- Benefits of solar energy and savings
- Product comparisons and recommendations
- Installation process and warranties
- Government subsidies (PM Surya Ghar) and net metering
Keep responses concise, friendly, and under 150 words. Prices are in Indian Rupees.
Encourage users to use the Solar Calculator for personalized estimates.`

type keywordReply struct {
	keywords []string
	reply    string
}

// Order matters: the first matching group wins.
var keywordReplies = []keywordReply{
	{
		keywords: []string{"price", "cost"},
		reply:    "Our solar systems range from ₹5,999 for a 3kW home system to ₹2,75,000 for industrial 250kW installations. Use our Solar Calculator for a personalized estimate!",
	},
	{
		keywords: []string{"size", "kw"},
		reply:    "The right system size depends on your electricity bill. A typical home uses 3-10kW, while commercial properties need 25-250kW. Try our Solar Calculator!",
	},
	{
		keywords: []string{"warranty"},
		reply:    "All our solar systems come with 25-30 year warranties. Premium brands like SunPower and LG offer extended performance guarantees.",
	},
	{
		keywords: []string{"install"},
		reply:    "Installation typically takes 1-3 days for homes and 1-2 weeks for commercial projects. Our vendors handle permits and grid connection.",
	},
	{
		keywords: []string{"save", "bill"},
		reply:    "On average, solar can reduce your electricity bills by 70-90%. Your exact savings depend on your consumption and system size.",
	},
}

const defaultReply = "Thanks for your question! I'm your SolarSavers assistant. For personalized recommendations, try our Solar Calculator or browse our products. How can I help you with solar energy today?"

// KeywordResponder answers from a fixed table and never fails.
type KeywordResponder struct{}

func (KeywordResponder) Reply(_ context.Context, prompt string, _ []Turn) (string, error) {
	lower := strings.ToLower(prompt)
	for _, kr := range keywordReplies {
		for _, kw := range kr.keywords {
			if strings.Contains(lower, kw) {
				return kr.reply, nil
			}
		}
	}
	return defaultReply, nil
}

// FallbackResponder bounds Primary by Timeout and answers from Fallback when
// it errors.
type FallbackResponder struct {
	Primary  Responder
	Fallback Responder
	Timeout  time.Duration
	// OnFallback is called with the primary error, if set.
	OnFallback func(err error)
}

func (f *FallbackResponder) Reply(ctx context.Context, prompt string, history []Turn) (string, error) {
	if f.Primary != nil {
		pctx := ctx
		if f.Timeout > 0 {
			var cancel context.CancelFunc
			pctx, cancel = context.WithTimeout(ctx, f.Timeout)
			defer cancel()
		}

		reply, err := f.Primary.Reply(pctx, prompt, history)
		if err == nil && strings.TrimSpace(reply) != "" {
			return reply, nil
		}
		if err == nil {
			err = ErrUnavailable
		}
		logrus.WithError(err).Warn("Assistant primary responder failed, using fallback")
		if f.OnFallback != nil {
			f.OnFallback(err)
		}
	}

	fallback := f.Fallback
	if fallback == nil {
		fallback = KeywordResponder{}
	}
	return fallback.Reply(ctx, prompt, history)
}
