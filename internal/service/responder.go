package service

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/mindfulware/therabot/internal/domain"
	"github.com/mindfulware/therabot/internal/emotion"
	"github.com/mindfulware/therabot/internal/knowledge"
	"github.com/mindfulware/therabot/internal/retrieval"
)

// ambientAudioTriggers are the fixed phrases that count as an explicit
// request for calming background audio.
var ambientAudioTriggers = []string{
	"play rain",
	"rain sounds",
	"play some music",
	"play music",
	"peaceful music",
	"relaxing music",
	"calming music",
	"ambient sounds",
	"soothing sounds",
}

// ambientAudioAck is appended to the reply when audio was explicitly
// requested.
const ambientAudioAck = "I've started some gentle rain sounds for you. 🌧️"

// genericApology is the orchestrator-level fallback reply: whatever
// fails inside the pipeline, the caller still receives a usable triple.
const genericApology = "I'm sorry, something went wrong on my side 💙. I'm still here for you — could you try again?"

// RespondInput carries one inbound chat turn.
type RespondInput struct {
	Message  string
	UserID   int64
	UserMood string
	Username string
}

// Responder composes the conversational pipeline: emotion detection,
// context retrieval, prompt assembly, generation and the ambient-audio
// decision. It is the outermost fault boundary; Respond never fails and
// never panics outward.
type Responder struct {
	classifier *emotion.Classifier
	loader     *knowledge.Loader
	retriever  *retrieval.Retriever
	response   *ResponseService
	topK       int
	logger     *zap.Logger

	// Full-corpus embeddings are computed once per corpus content and
	// reused across turns; per-emotion subsets are embedded fresh by
	// the retriever.
	embedder  retrieval.Embedder
	mu        sync.Mutex
	corpusKey string
	corpusEmb [][]float32
}

// NewResponder wires the pipeline components.
func NewResponder(
	classifier *emotion.Classifier,
	loader *knowledge.Loader,
	retriever *retrieval.Retriever,
	embedder retrieval.Embedder,
	response *ResponseService,
	topK int,
	logger *zap.Logger,
) *Responder {
	if topK < 1 {
		topK = 1
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Responder{
		classifier: classifier,
		loader:     loader,
		retriever:  retriever,
		embedder:   embedder,
		response:   response,
		topK:       topK,
		logger:     logger,
	}
}

// Respond handles one chat message end to end and always returns a
// usable reply triple.
func (r *Responder) Respond(ctx context.Context, in RespondInput) (reply domain.BotReply) {
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Error("panic in conversation pipeline", zap.Any("panic", rec))
			reply = domain.BotReply{
				Text:     genericApology,
				Emotion:  domain.EmotionNeutral,
				PlayRain: false,
			}
		}
	}()

	// An explicitly declared mood overrides detection for the turn.
	emotionLabel, declared := domain.ParseEmotionLabel(strings.ToLower(strings.TrimSpace(in.UserMood)))
	if !declared {
		emotionLabel = r.classifier.Classify(ctx, in.Message)
	}

	username := strings.TrimSpace(in.Username)
	if username == "" {
		if in.UserID > 0 {
			username = fmt.Sprintf("user %d", in.UserID)
		} else {
			username = "friend"
		}
	}

	lowerMsg := strings.ToLower(in.Message)
	audioRequested := false
	for _, phrase := range ambientAudioTriggers {
		if strings.Contains(lowerMsg, phrase) {
			audioRequested = true
			break
		}
	}

	entries := r.loader.Load()
	corpusEmb := r.corpusEmbeddings(ctx, entries)
	contexts := r.retriever.Retrieve(ctx, in.Message, emotionLabel, entries, corpusEmb, r.topK)

	mood, stress := emotion.AnalyzeMoodStress(in.Message)
	userPrompt := BuildUserPrompt(in.Message, string(emotionLabel), mood, stress, contexts)
	text := r.response.Generate(ctx, userPrompt, username)

	playRain := audioRequested ||
		emotionLabel == domain.EmotionWorried ||
		strings.Contains(lowerMsg, "anxious") ||
		strings.Contains(lowerMsg, "stressed")

	if audioRequested {
		text = text + " " + ambientAudioAck
	}

	return domain.BotReply{
		Text:     text,
		Emotion:  emotionLabel,
		PlayRain: playRain,
	}
}

// corpusEmbeddings returns cached full-corpus embeddings, recomputing
// only when the corpus content changed. Returns nil on embedding
// failure; the retriever then embeds (or degrades) on its own.
func (r *Responder) corpusEmbeddings(ctx context.Context, entries []domain.KnowledgeEntry) [][]float32 {
	if r.embedder == nil {
		return nil
	}

	texts := make([]string, len(entries))
	for i, e := range entries {
		texts[i] = e.Text
	}
	key := strings.Join(texts, "\x00")

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.corpusKey == key && r.corpusEmb != nil {
		return r.corpusEmb
	}

	embs, err := r.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		r.logger.Warn("failed to precompute corpus embeddings", zap.Error(err))
		return nil
	}

	r.corpusKey = key
	r.corpusEmb = embs
	return embs
}
