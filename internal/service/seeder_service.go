package service

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"interviewiq-server/config"
	"interviewiq-server/internal/model"
	"interviewiq-server/internal/repository"
)

// SeederService loads the built-in question bank and the default admin
// account on first boot. Seeding is skipped when the bank already has rows,
// so repeated restarts are safe.
type SeederService interface {
	Seed() error
}

type seederService struct {
	cfg          *config.Config
	userRepo     repository.UserRepository
	questionRepo repository.QuestionRepository
}

func NewSeederService(cfg *config.Config, userRepo repository.UserRepository, questionRepo repository.QuestionRepository) SeederService {
	return &seederService{cfg: cfg, userRepo: userRepo, questionRepo: questionRepo}
}

func (s *seederService) Seed() error {
	if !s.cfg.SeedQuestionBank {
		log.Info().Msg("Question bank seeding disabled")
		return nil
	}

	if err := s.seedAdmin(); err != nil {
		return err
	}
	return s.seedQuestions()
}

func (s *seederService) seedAdmin() error {
	existing, err := s.userRepo.FindByEmail("admin@interviewiq.local")
	if err != nil {
		return fmt.Errorf("failed to check admin account: %w", err)
	}
	if existing != nil {
		return nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte("admin1234"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}
	admin := model.User{
		Email:    "admin@interviewiq.local",
		Password: string(hashed),
		Name:     "Administrator",
		Role:     model.RoleAdmin,
	}
	if err := s.userRepo.Create(&admin); err != nil {
		return fmt.Errorf("failed to create admin account: %w", err)
	}
	log.Info().Str("email", admin.Email).Msg("Seeded default admin account")
	return nil
}

func (s *seederService) seedQuestions() error {
	count, err := s.questionRepo.Count()
	if err != nil {
		return fmt.Errorf("failed to count questions: %w", err)
	}
	if count > 0 {
		log.Info().Int64("count", count).Msg("Question bank already seeded")
		return nil
	}

	for i := range seedQuestions {
		if err := s.questionRepo.Create(&seedQuestions[i]); err != nil {
			return fmt.Errorf("failed to seed question %q: %w", seedQuestions[i].Text, err)
		}
	}
	log.Info().Int("count", len(seedQuestions)).Msg("Seeded question bank")
	return nil
}

var seedQuestions = []model.Question{
	// HR
	{
		InterviewType: model.InterviewTypeHR,
		FocusArea:     "communication",
		Difficulty:    model.DifficultyEasy,
		Category:      "clarity",
		Text:          "Tell me about yourself.",
		IdealAnswer:   "A concise two-minute narrative covering current role, key achievements, and why this position fits your goals.",
		KeyPoints:     model.StringList{"current role", "key achievement", "motivation for the role"},
		CommonMistakes: model.StringList{
			"reciting the full resume chronologically",
			"sharing personal details unrelated to work",
		},
	},
	{
		InterviewType: model.InterviewTypeHR,
		FocusArea:     "communication",
		Difficulty:    model.DifficultyEasy,
		Category:      "relevance",
		Text:          "Why do you want to work at this company?",
		IdealAnswer:   "Specific reasons tied to the company's product, culture, or mission, connected to your own skills and plans.",
		KeyPoints:     model.StringList{"company research", "personal fit", "concrete examples"},
		CommonMistakes: model.StringList{
			"generic praise that could apply to any company",
			"focusing only on salary and benefits",
		},
	},
	{
		InterviewType: model.InterviewTypeHR,
		FocusArea:     "self-awareness",
		Difficulty:    model.DifficultyMedium,
		Category:      "confidence",
		Text:          "What is your greatest weakness?",
		IdealAnswer:   "A genuine weakness with a concrete story of how you are actively improving it.",
		KeyPoints:     model.StringList{"honest weakness", "improvement plan", "evidence of progress"},
		CommonMistakes: model.StringList{
			"disguising a strength as a weakness",
			"naming a weakness critical to the role",
		},
	},
	{
		InterviewType: model.InterviewTypeHR,
		FocusArea:     "career",
		Difficulty:    model.DifficultyMedium,
		Category:      "structure",
		Text:          "Where do you see yourself in five years?",
		IdealAnswer:   "A realistic growth path that aligns your ambitions with what the role can offer.",
		KeyPoints:     model.StringList{"realistic goals", "alignment with the role", "growth mindset"},
		CommonMistakes: model.StringList{
			"claiming you have not thought about it",
			"describing a path that leaves the company quickly",
		},
	},
	{
		InterviewType: model.InterviewTypeHR,
		FocusArea:     "career",
		Difficulty:    model.DifficultyMedium,
		Category:      "clarity",
		Text:          "Why are you leaving your current job?",
		IdealAnswer:   "A forward-looking reason focused on growth, framed without criticizing the current employer.",
		KeyPoints:     model.StringList{"positive framing", "growth motivation", "no blame"},
		CommonMistakes: model.StringList{
			"speaking negatively about the current employer",
			"citing only compensation",
		},
	},
	{
		InterviewType: model.InterviewTypeHR,
		FocusArea:     "negotiation",
		Difficulty:    model.DifficultyHard,
		Category:      "confidence",
		Text:          "What are your salary expectations, and how did you arrive at that number?",
		IdealAnswer:   "A researched range backed by market data and your level of experience, stated without apology.",
		KeyPoints:     model.StringList{"market research", "a range not a point", "confident delivery"},
		CommonMistakes: model.StringList{
			"giving a number with no justification",
			"underselling to avoid the topic",
		},
	},
	{
		InterviewType: model.InterviewTypeHR,
		FocusArea:     "self-awareness",
		Difficulty:    model.DifficultyHard,
		Category:      "relevance",
		Text:          "Describe a time you received harsh criticism. How did you respond?",
		IdealAnswer:   "A specific incident, your immediate reaction, what you changed, and the measurable outcome.",
		KeyPoints:     model.StringList{"specific incident", "response without defensiveness", "lasting change"},
		CommonMistakes: model.StringList{
			"choosing trivial criticism to stay comfortable",
			"blaming the critic instead of reflecting",
		},
	},

	// Technical
	{
		InterviewType: model.InterviewTypeTechnical,
		FocusArea:     "fundamentals",
		Difficulty:    model.DifficultyEasy,
		Category:      "clarity",
		Text:          "Explain the difference between a process and a thread.",
		IdealAnswer:   "A process owns its address space and resources; threads share the process's memory and are the unit of scheduling within it.",
		KeyPoints:     model.StringList{"address space isolation", "shared memory in threads", "context switch cost"},
		CommonMistakes: model.StringList{
			"treating the terms as interchangeable",
			"ignoring the memory-sharing implications",
		},
	},
	{
		InterviewType: model.InterviewTypeTechnical,
		FocusArea:     "fundamentals",
		Difficulty:    model.DifficultyEasy,
		Category:      "structure",
		Text:          "What happens when you type a URL into a browser and press enter?",
		IdealAnswer:   "A layered walkthrough: DNS resolution, TCP and TLS handshakes, the HTTP request, server processing, and rendering.",
		KeyPoints:     model.StringList{"DNS", "TCP/TLS handshake", "HTTP request and response", "rendering"},
		CommonMistakes: model.StringList{
			"skipping DNS entirely",
			"jumping straight to rendering with no network steps",
		},
	},
	{
		InterviewType: model.InterviewTypeTechnical,
		FocusArea:     "databases",
		Difficulty:    model.DifficultyMedium,
		Category:      "relevance",
		Text:          "When would you choose a NoSQL database over a relational one?",
		IdealAnswer:   "A trade-off discussion: flexible schemas and horizontal scaling versus transactions and relational integrity, anchored to a concrete workload.",
		KeyPoints:     model.StringList{"schema flexibility", "scaling model", "consistency trade-offs", "concrete use case"},
		CommonMistakes: model.StringList{
			"declaring one kind universally better",
			"no mention of consistency trade-offs",
		},
	},
	{
		InterviewType: model.InterviewTypeTechnical,
		FocusArea:     "system design",
		Difficulty:    model.DifficultyMedium,
		Category:      "structure",
		Text:          "How would you design a URL shortener?",
		IdealAnswer:   "Requirements first, then the key generation scheme, storage layout, redirect path, and how caching and replication handle read-heavy load.",
		KeyPoints:     model.StringList{"requirements", "key generation", "storage and cache", "redirect latency"},
		CommonMistakes: model.StringList{
			"diving into code before scoping requirements",
			"ignoring collision handling",
		},
	},
	{
		InterviewType: model.InterviewTypeTechnical,
		FocusArea:     "debugging",
		Difficulty:    model.DifficultyMedium,
		Category:      "clarity",
		Text:          "A production service is suddenly slow. Walk me through your debugging process.",
		IdealAnswer:   "A systematic narrowing: check recent deploys, metrics and logs, isolate the layer, reproduce, fix, and verify with the same metrics.",
		KeyPoints:     model.StringList{"recent changes", "metrics and logs", "isolating the layer", "verification"},
		CommonMistakes: model.StringList{
			"guessing at a fix before gathering data",
			"restarting services without diagnosis",
		},
	},
	{
		InterviewType: model.InterviewTypeTechnical,
		FocusArea:     "system design",
		Difficulty:    model.DifficultyHard,
		Category:      "structure",
		Text:          "Design a rate limiter for a distributed API gateway.",
		IdealAnswer:   "Algorithm choice such as token bucket or sliding window, shared state in a store like Redis, handling clock skew, and graceful degradation when the store is down.",
		KeyPoints:     model.StringList{"algorithm choice", "shared counter store", "failure behavior", "per-client keys"},
		CommonMistakes: model.StringList{
			"designing for a single node only",
			"no plan for the limiter's own failure",
		},
	},
	{
		InterviewType: model.InterviewTypeTechnical,
		FocusArea:     "concurrency",
		Difficulty:    model.DifficultyHard,
		Category:      "relevance",
		Text:          "Explain how you would detect and fix a deadlock in a running system.",
		IdealAnswer:   "Detection via stack dumps or lock graphs, identifying the cycle, and fixing through lock ordering, timeouts, or redesigning the critical section.",
		KeyPoints:     model.StringList{"detection tooling", "lock ordering", "cycle identification", "prevention strategy"},
		CommonMistakes: model.StringList{
			"confusing deadlock with livelock or starvation",
			"proposing only restarts as the fix",
		},
	},

	// Behavioral
	{
		InterviewType: model.InterviewTypeBehavioral,
		FocusArea:     "teamwork",
		Difficulty:    model.DifficultyEasy,
		Category:      "structure",
		Text:          "Tell me about a time you worked well in a team.",
		IdealAnswer:   "A STAR-shaped story naming your specific role and the team outcome.",
		KeyPoints:     model.StringList{"specific situation", "your role", "team outcome"},
		CommonMistakes: model.StringList{
			"describing the team's work without your contribution",
			"vague generalities instead of one story",
		},
	},
	{
		InterviewType: model.InterviewTypeBehavioral,
		FocusArea:     "adaptability",
		Difficulty:    model.DifficultyEasy,
		Category:      "clarity",
		Text:          "Describe a time you had to learn something new quickly.",
		IdealAnswer:   "The constraint, your learning approach, and what you delivered with the new skill.",
		KeyPoints:     model.StringList{"time pressure", "learning method", "delivered result"},
		CommonMistakes: model.StringList{
			"no concrete outcome from the learning",
			"picking a skill learned over months",
		},
	},
	{
		InterviewType: model.InterviewTypeBehavioral,
		FocusArea:     "conflict",
		Difficulty:    model.DifficultyMedium,
		Category:      "confidence",
		Text:          "Tell me about a disagreement with a coworker and how you resolved it.",
		IdealAnswer:   "The substance of the disagreement, how you heard their side, and the resolution both could accept.",
		KeyPoints:     model.StringList{"the disagreement", "listening to the other side", "mutual resolution"},
		CommonMistakes: model.StringList{
			"painting the coworker as entirely wrong",
			"claiming you have never disagreed with anyone",
		},
	},
	{
		InterviewType: model.InterviewTypeBehavioral,
		FocusArea:     "leadership",
		Difficulty:    model.DifficultyMedium,
		Category:      "structure",
		Text:          "Describe a time you took ownership of a project beyond your assigned role.",
		IdealAnswer:   "Why you stepped up, what you did, and the impact, without diminishing teammates.",
		KeyPoints:     model.StringList{"initiative", "concrete actions", "measured impact"},
		CommonMistakes: model.StringList{
			"taking credit for group effort",
			"no measurable outcome",
		},
	},
	{
		InterviewType: model.InterviewTypeBehavioral,
		FocusArea:     "failure",
		Difficulty:    model.DifficultyMedium,
		Category:      "relevance",
		Text:          "Tell me about a time you missed a deadline. What happened?",
		IdealAnswer:   "Honest account of the miss, how you communicated early, and the process change that followed.",
		KeyPoints:     model.StringList{"honest account", "early communication", "process change"},
		CommonMistakes: model.StringList{
			"blaming circumstances entirely",
			"claiming you have never missed one",
		},
	},
	{
		InterviewType: model.InterviewTypeBehavioral,
		FocusArea:     "failure",
		Difficulty:    model.DifficultyHard,
		Category:      "confidence",
		Text:          "Describe your biggest professional failure and what it cost.",
		IdealAnswer:   "A real failure with real stakes, what it cost the team or business, and the durable lesson.",
		KeyPoints:     model.StringList{"real stakes", "honest cost", "durable lesson"},
		CommonMistakes: model.StringList{
			"choosing a failure with no consequences",
			"stopping at the lesson without evidence of change",
		},
	},
	{
		InterviewType: model.InterviewTypeBehavioral,
		FocusArea:     "leadership",
		Difficulty:    model.DifficultyHard,
		Category:      "structure",
		Text:          "Tell me about a time you had to deliver bad news to stakeholders.",
		IdealAnswer:   "How you prepared, delivered the news directly with options, and managed the aftermath.",
		KeyPoints:     model.StringList{"preparation", "direct delivery", "options offered", "follow-through"},
		CommonMistakes: model.StringList{
			"burying the bad news in qualifiers",
			"delivering problems without options",
		},
	},
}
