package main

import (
	"context"
	"log"

	"quiz-funnel/internal/config"
	"quiz-funnel/internal/database"
	"quiz-funnel/internal/domain"
	"quiz-funnel/internal/logger"
	"quiz-funnel/internal/repository"

	"go.uber.org/zap"
)

// seedQuestion bundles a question with its option rows for seeding.
type seedQuestion struct {
	key     string
	qType   domain.QuestionType
	text    string
	weight  float64
	options []seedOption
}

type seedOption struct {
	text  string
	score int
}

var stressCheckQuestions = []seedQuestion{
	{
		key: "sleep", qType: domain.QuestionTypeSingleChoice, weight: 1.0,
		text: "How well have you been sleeping lately?",
		options: []seedOption{
			{"Soundly, most nights", 0},
			{"Okay, with occasional bad nights", 1},
			{"Restless more often than not", 2},
			{"I barely sleep", 3},
		},
	},
	{
		key: "focus", qType: domain.QuestionTypeLikert4, weight: 2.0,
		text: "I find it hard to concentrate during the day.",
		options: []seedOption{
			{"Never", 0},
			{"Sometimes", 1},
			{"Often", 2},
			{"Almost always", 3},
		},
	},
	{
		key: "irritability", qType: domain.QuestionTypeLikert4, weight: 1.5,
		text: "Small things set me off more than they used to.",
		options: []seedOption{
			{"Never", 0},
			{"Sometimes", 1},
			{"Often", 2},
			{"Almost always", 3},
		},
	},
	{
		key: "overwhelm", qType: domain.QuestionTypeScale, weight: 2.0,
		text: "How overwhelmed do you feel by your daily responsibilities?",
		options: []seedOption{
			{"Not at all", 0},
			{"A little", 1},
			{"Quite a bit", 2},
			{"Completely", 3},
		},
	},
	{
		key: "main_trigger", qType: domain.QuestionTypeAnchor, weight: 1.0,
		text: "What triggers your stress the most?",
		options: []seedOption{
			{"Work deadlines", 0},
			{"Family conflicts", 0},
			{"Money worries", 0},
			{"Health concerns", 0},
		},
	},
	{
		key: "goal", qType: domain.QuestionTypeAnchor, weight: 1.0,
		text: "What would you most like to change?",
		options: []seedOption{
			{"Sleep through the night", 0},
			{"Stay calm under pressure", 0},
			{"Have more energy", 0},
			{"Feel in control again", 0},
		},
	},
	{
		key: "science_note", qType: domain.QuestionTypeInfo, weight: 1.0,
		text: "Chronic stress keeps cortisol elevated. Short daily practice brings it down.",
	},
}

var priceRows = []domain.PriceRow{
	{OfferID: "offer-calm", Tier: domain.TierFirstDiscount, AmountCents: 1499, Currency: "USD", Interval: "month"},
	{OfferID: "offer-calm", Tier: domain.TierMaxDiscount, AmountCents: 999, Currency: "USD", Interval: "month"},
	{OfferID: "offer-calm", Tier: domain.TierFullPrice, AmountCents: 2999, Currency: "USD", Interval: "month"},
	{OfferID: "offer-reset", Tier: domain.TierFirstDiscount, AmountCents: 1999, Currency: "USD", Interval: "month"},
	{OfferID: "offer-reset", Tier: domain.TierMaxDiscount, AmountCents: 1499, Currency: "USD", Interval: "month"},
	{OfferID: "offer-reset", Tier: domain.TierFullPrice, AmountCents: 3999, Currency: "USD", Interval: "month"},
	{OfferID: "offer-intensive", Tier: domain.TierFirstDiscount, AmountCents: 2499, Currency: "USD", Interval: "month"},
	{OfferID: "offer-intensive", Tier: domain.TierMaxDiscount, AmountCents: 1999, Currency: "USD", Interval: "month"},
	{OfferID: "offer-intensive", Tier: domain.TierFullPrice, AmountCents: 4999, Currency: "USD", Interval: "month"},
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger.Initialize(cfg.Logger)
	appLogger := logger.Get()
	defer logger.Sync()

	db, err := database.NewSQLXOracleDB(cfg.GetDSN())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	ctx := context.Background()
	questionRepo := repository.NewSQLXQuestionRepository(db)
	pricingRepo := repository.NewSQLXPricingRepository(db)

	quizID := "stress-check"
	for position, sq := range stressCheckQuestions {
		question := domain.NewQuestion(quizID, sq.key, sq.qType, sq.text, position+1)
		question.Weight = sq.weight
		if err := questionRepo.SaveQuestion(ctx, question); err != nil {
			appLogger.Fatal("Failed to seed question", zap.String("key", sq.key), zap.Error(err))
		}
		for optionPosition, so := range sq.options {
			option := &domain.Option{
				QuestionID: question.ID,
				Text:       so.text,
				Score:      so.score,
				Position:   optionPosition + 1,
			}
			if err := questionRepo.SaveOption(ctx, option); err != nil {
				appLogger.Fatal("Failed to seed option", zap.String("question", sq.key), zap.Error(err))
			}
		}
		appLogger.Info("Seeded question", zap.String("key", sq.key), zap.Int("options", len(sq.options)))
	}

	for _, row := range priceRows {
		if err := pricingRepo.SavePriceRow(ctx, &row); err != nil {
			appLogger.Fatal("Failed to seed price row",
				zap.String("offerID", row.OfferID), zap.String("tier", string(row.Tier)), zap.Error(err))
		}
	}
	appLogger.Info("Seeded price rows", zap.Int("count", len(priceRows)))
}
