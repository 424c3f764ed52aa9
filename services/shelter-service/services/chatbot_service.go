package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/whiteheadbella/vet-management/services/common/chatbot"
	"github.com/whiteheadbella/vet-management/services/shelter-service/models"
	"github.com/whiteheadbella/vet-management/services/shelter-service/repository"
	"go.uber.org/zap"
)

// ChatbotService answers free-text questions about the shelter's inventory.
// Intent routing is an ordered rule table; the first matching rule wins and
// no conversation state is kept between calls.
type ChatbotService struct {
	petRepo repository.PetRepository
	logger  *zap.Logger
	rules   []chatbot.Rule
}

func NewChatbotService(petRepo repository.PetRepository, logger *zap.Logger) *ChatbotService {
	s := &ChatbotService{petRepo: petRepo, logger: logger}
	s.rules = []chatbot.Rule{
		{Match: chatbot.MatchAny("hello", "hi", "hey", "greetings"), Handle: s.greet},
		{Match: chatbot.MatchAny("help", "what can you do"), Handle: s.help},
		{Match: chatbot.MatchAny("how many", "total", "statistics", "stats"), Handle: s.stats},
		{Match: chatbot.MatchAny("available", "ready for adoption"), Handle: s.available},
		{Match: chatbot.MatchAny("pending"), Handle: s.pending},
		{Match: chatbot.MatchAny("adopted", "found home"), Handle: s.adopted},
		{Match: chatbot.MatchAny("find", "search", "show me", "looking for"), Handle: s.search},
		{Match: chatbot.MatchAny("vaccinated", "microchipped"), Handle: s.medical},
	}
	return s
}

// Reply processes one chat message. Identical messages always yield the
// same branch regardless of prior turns.
func (s *ChatbotService) Reply(ctx context.Context, message string) string {
	msg := strings.ToLower(strings.TrimSpace(message))
	if msg == "" {
		return "Please ask me something about our pets!"
	}
	for _, rule := range s.rules {
		if rule.Match(msg) {
			return rule.Handle(ctx, msg)
		}
	}
	return "I'm not sure how to help with that. Try asking 'help' to see what I can do!"
}

func (s *ChatbotService) greet(ctx context.Context, msg string) string {
	return "Hello! 👋 I'm the Shelter Assistant. I can help you with information about our pets, " +
		"statistics, and more. Try asking 'How many pets do we have?' or 'Show me available dogs'."
}

func (s *ChatbotService) help(ctx context.Context, msg string) string {
	return "I can help you with:\n\n" +
		"📊 Statistics: \"How many pets do we have?\"\n" +
		"🐕 Dogs: \"Show me dogs\" or \"How many dogs?\"\n" +
		"🐱 Cats: \"Show me cats\" or \"How many cats?\"\n" +
		"✅ Available pets: \"Available pets\"\n" +
		"⏳ Pending adoptions: \"Pending pets\"\n" +
		"🏆 Adopted pets: \"Adopted pets\"\n" +
		"🔍 Search: \"Find [pet name]\" or \"Show me [breed]\"\n\n" +
		"Just ask naturally!"
}

func (s *ChatbotService) stats(ctx context.Context, msg string) string {
	stats, err := s.petRepo.Stats(ctx)
	if err != nil {
		s.logger.Warn("chatbot stats query failed", zap.Error(err))
		return "Statistics are temporarily unavailable. Please try again."
	}

	if strings.Contains(msg, "dog") {
		avail, _ := s.petRepo.FindByStatus(ctx, models.StatusAvailable, "dog", 100)
		return fmt.Sprintf("🐕 We currently have **%d dogs** in our shelter (%d available for adoption).",
			stats.Dogs, len(avail))
	}
	if strings.Contains(msg, "cat") {
		avail, _ := s.petRepo.FindByStatus(ctx, models.StatusAvailable, "cat", 100)
		return fmt.Sprintf("🐱 We currently have **%d cats** in our shelter (%d available for adoption).",
			stats.Cats, len(avail))
	}

	return fmt.Sprintf("📊 **Shelter Statistics:**\n\n"+
		"🐾 Total Pets: **%d**\n✅ Available: **%d**\n⏳ Pending Adoption: **%d**\n"+
		"🏠 Adopted: **%d**\n🐕 Dogs: **%d**\n🐱 Cats: **%d**",
		stats.TotalPets, stats.Available, stats.Pending, stats.Adopted, stats.Dogs, stats.Cats)
}

func (s *ChatbotService) available(ctx context.Context, msg string) string {
	species, speciesName := speciesFromMessage(msg)
	pets, err := s.petRepo.FindByStatus(ctx, models.StatusAvailable, species, 5)
	if err != nil {
		s.logger.Warn("chatbot availability query failed", zap.Error(err))
		return "I couldn't look that up right now. Please try again."
	}
	if len(pets) == 0 {
		return fmt.Sprintf("Currently, we don't have any available %s. Please check back soon!", speciesName)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "✅ **Available %s:**\n\n", strings.Title(speciesName))
	for _, pet := range pets {
		fmt.Fprintf(&b, "• **%s** - %s (%d years old, %s)\n",
			pet.Name, breedOrSpecies(pet), pet.Age, pet.Gender)
	}
	if len(pets) == 5 {
		fmt.Fprintf(&b, "\n...and more! Visit /pets to see all available %s.", speciesName)
	}
	return b.String()
}

func (s *ChatbotService) pending(ctx context.Context, msg string) string {
	pets, err := s.petRepo.FindByStatus(ctx, models.StatusPending, "", 5)
	if err != nil {
		s.logger.Warn("chatbot pending query failed", zap.Error(err))
		return "I couldn't look that up right now. Please try again."
	}
	if len(pets) == 0 {
		return "Great news! We have no pending adoptions right now. All our pets are either available or already in loving homes! 🏠"
	}
	var b strings.Builder
	b.WriteString("⏳ **Pets Pending Adoption:**\n\n")
	for _, pet := range pets {
		fmt.Fprintf(&b, "• **%s** - %s (Adoption in progress)\n", pet.Name, breedOrSpecies(pet))
	}
	return b.String()
}

func (s *ChatbotService) adopted(ctx context.Context, msg string) string {
	pets, err := s.petRepo.FindByStatus(ctx, models.StatusAdopted, "", 5)
	if err != nil {
		s.logger.Warn("chatbot adopted query failed", zap.Error(err))
		return "I couldn't look that up right now. Please try again."
	}
	if len(pets) == 0 {
		return "We're working on finding homes for all our pets! No successful adoptions yet, but we're hopeful! 💕"
	}
	var b strings.Builder
	b.WriteString("🏠 **Recently Adopted Pets:**\n\n")
	for _, pet := range pets {
		fmt.Fprintf(&b, "• **%s** - %s (Found forever home! 💕)\n", pet.Name, breedOrSpecies(pet))
	}
	return b.String()
}

func (s *ChatbotService) search(ctx context.Context, msg string) string {
	term := chatbot.ExtractSearchTerm(msg)
	if term == "" {
		return "Tell me who you're looking for, for example 'Find Max' or 'Show me Labrador'."
	}

	pets, err := s.petRepo.SearchByNameOrBreed(ctx, term, 1)
	if err != nil {
		s.logger.Warn("chatbot search failed", zap.String("term", term), zap.Error(err))
		return "Search is temporarily unavailable. Please try again."
	}
	if len(pets) == 0 {
		return fmt.Sprintf("I couldn't find any pet matching \"%s\". Try another name or breed!", term)
	}

	pet := pets[0]
	return fmt.Sprintf("🔍 **Found: %s**\n\n"+
		"• Species: %s\n• Breed: %s\n• Age: %d years\n• Gender: %s\n• Status: %s",
		pet.Name, strings.Title(pet.Species), breedOrSpecies(pet), pet.Age, pet.Gender, strings.Title(pet.Status))
}

func (s *ChatbotService) medical(ctx context.Context, msg string) string {
	pets, _, err := s.petRepo.Find(ctx, repository.PetFilter{Status: "all", Page: 1, PerPage: 200})
	if err != nil {
		s.logger.Warn("chatbot medical query failed", zap.Error(err))
		return "I couldn't look that up right now. Please try again."
	}

	var vaccinated, chipped int
	for _, pet := range pets {
		if pet.Vaccinated {
			vaccinated++
		}
		if pet.Microchipped {
			chipped++
		}
	}
	if strings.Contains(msg, "microchip") {
		return fmt.Sprintf("💉 **%d** of our pets are microchipped.", chipped)
	}
	return fmt.Sprintf("💉 **%d** of our pets are vaccinated and **%d** are microchipped.", vaccinated, chipped)
}

func speciesFromMessage(msg string) (species, name string) {
	switch {
	case strings.Contains(msg, "dog"):
		return "dog", "dogs"
	case strings.Contains(msg, "cat"):
		return "cat", "cats"
	default:
		return "", "pets"
	}
}

func breedOrSpecies(pet models.Pet) string {
	if pet.Breed != "" {
		return pet.Breed
	}
	return strings.Title(pet.Species)
}
