package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/whiteheadbella/vet-management/services/common/chatbot"
	"github.com/whiteheadbella/vet-management/services/common/remote"
	"go.uber.org/zap"
)

// ChatbotService answers free-text adoption questions, pulling live data
// from both sibling services. Every remote lookup fails soft: a sibling
// being down yields an apologetic sentence, never an error. Ordered rule
// table; first match wins, no conversation state.
type ChatbotService struct {
	shelter *ShelterClient
	vet     *VetClient
	logger  *zap.Logger
	rules   []chatbot.Rule
}

func NewChatbotService(shelter *ShelterClient, vet *VetClient, logger *zap.Logger) *ChatbotService {
	s := &ChatbotService{shelter: shelter, vet: vet, logger: logger}
	s.rules = []chatbot.Rule{
		{Match: chatbot.MatchAny("hello", "hi", "hey", "greetings"), Handle: s.greet},
		{Match: chatbot.MatchAny("help", "what can you do"), Handle: s.help},
		{Match: s.matchProcess, Handle: s.process},
		{Match: chatbot.MatchAny("how many", "statistics", "stats"), Handle: s.stats},
		{Match: s.matchHealth, Handle: s.health},
		{Match: chatbot.MatchAny("kid", "children", "family"), Handle: s.familyFriendly},
		{Match: chatbot.MatchAny("available", "adoption", "find pet"), Handle: s.available},
		{Match: chatbot.MatchAny("find", "search", "show me"), Handle: s.search},
	}
	return s
}

// Reply processes one chat message. Identical messages always yield the
// same branch regardless of prior turns.
func (s *ChatbotService) Reply(ctx context.Context, message string) string {
	msg := strings.ToLower(strings.TrimSpace(message))
	if msg == "" {
		return "Please ask me something about pet adoption!"
	}
	for _, rule := range s.rules {
		if rule.Match(msg) {
			return rule.Handle(ctx, msg)
		}
	}
	return "I'm not sure how to answer that. Here are some things you can ask me:\n\n" +
		"💬 \"Show me available pets\"\n" +
		"💬 \"Dogs for adoption\"\n" +
		"💬 \"How to adopt?\"\n" +
		"💬 \"Check health status for pet 1\"\n" +
		"💬 \"Pets good with kids\"\n" +
		"💬 \"Find Max\"\n\n" +
		"Or just type 'help' to see all my features!"
}

func (s *ChatbotService) greet(ctx context.Context, msg string) string {
	return "Hello! 👋 I'm the Adoption Assistant. I can help you find pets available for adoption, " +
		"check their health status, and guide you through the adoption process. " +
		"Try asking 'Show me available pets' or 'How does adoption work?'."
}

func (s *ChatbotService) help(ctx context.Context, msg string) string {
	return "I can help you with:\n\n" +
		"🐾 Available Pets: \"Show me available pets\" or \"Dogs for adoption\"\n" +
		"🔍 Search: \"Find [pet name]\" or \"Show me puppies\"\n" +
		"🏥 Health Info: \"Check health status for pet [id]\"\n" +
		"❤️ Adoption Process: \"How to adopt?\" or \"Adoption steps\"\n" +
		"📊 Statistics: \"How many pets available?\"\n" +
		"👶 Family-Friendly: \"Pets good with kids\"\n\n" +
		"I can also integrate information from our Shelter and Veterinary systems!"
}

func (s *ChatbotService) matchProcess(msg string) bool {
	return strings.Contains(msg, "adopt") &&
		chatbot.MatchAny("how", "process", "steps", "work")(msg)
}

func (s *ChatbotService) process(ctx context.Context, msg string) string {
	return "❤️ **Adoption Process:**\n\n" +
		"**Step 1: Browse Pets** 🔍\nVisit our shelter system to see all available pets\n\n" +
		"**Step 2: Meet Your Match** 🐾\nFind a pet that fits your lifestyle and family\n\n" +
		"**Step 3: Health Check** 🏥\nReview the pet's health records and vaccination status\n\n" +
		"**Step 4: Submit Application** 📝\nFill out our adoption application form\n\n" +
		"**Step 5: Home Visit** 🏠\nSchedule a home visit to ensure good environment\n\n" +
		"**Step 6: Finalize Adoption** ✅\nComplete paperwork and take your new friend home!\n\n" +
		"**Step 7: Follow-up Care** 💕\nSchedule first vet appointment within 2 weeks\n\n" +
		"Would you like to see available pets?"
}

func (s *ChatbotService) stats(ctx context.Context, msg string) string {
	stats, status := s.shelter.GetStats(ctx)
	if status != remote.FetchOK {
		return "Statistics temporarily unavailable. Please try again."
	}
	return fmt.Sprintf("📊 **Adoption Statistics:**\n\n"+
		"🐾 Total Pets: **%d**\n✅ Available for Adoption: **%d**\n"+
		"⏳ Adoption Pending: **%d**\n🏠 Successfully Adopted: **%d**\n\n"+
		"🐕 Dogs: **%d**\n🐱 Cats: **%d**\n\n"+
		"Ready to find your perfect match? Ask me to show available pets!",
		stats.TotalPets, stats.Available, stats.Pending, stats.Adopted, stats.Dogs, stats.Cats)
}

func (s *ChatbotService) matchHealth(msg string) bool {
	return strings.Contains(msg, "health") && chatbot.ExtractPetID(msg) != 0
}

func (s *ChatbotService) health(ctx context.Context, msg string) string {
	petID := chatbot.ExtractPetID(msg)

	pet, petStatus := s.shelter.GetPet(ctx, petID)
	health, healthStatus := s.vet.GetHealth(ctx, petID)
	if petStatus != remote.FetchOK {
		return fmt.Sprintf("Unable to find complete information for Pet ID %d.", petID)
	}

	checkup := "Not recorded"
	weight := "N/A"
	vaccinationCount := 0
	if healthStatus == remote.FetchOK {
		if health.LastCheckup != nil {
			checkup = *health.LastCheckup
		}
		if health.Weight > 0 {
			weight = fmt.Sprintf("%.1f", health.Weight)
		}
		vaccinationCount = len(health.Vaccinations)
	}

	return fmt.Sprintf("🏥 **Health Status for %s:**\n\n"+
		"📋 **Basic Info:**\n• Species: %s\n• Breed: %s\n• Age: %d years\n• Gender: %s\n\n"+
		"💉 **Medical Status:**\n• Vaccinated: %s\n• Spayed/Neutered: %s\n• Microchipped: %s\n\n"+
		"🏥 **Veterinary Records:**\n• Last Checkup: %s\n• Weight: %s kg\n• Vaccination Records: %d on file\n\n"+
		"%s is ready for adoption! Would you like to know more?",
		pet.Name, titleCase(pet.Species), breedOrMixed(pet), pet.Age, titleCase(pet.Gender),
		yesNo(pet.Vaccinated), yesNo(pet.SpayedNeutered), yesNo(pet.Microchipped),
		checkup, weight, vaccinationCount, pet.Name)
}

func (s *ChatbotService) familyFriendly(ctx context.Context, msg string) string {
	page, status := s.shelter.ListPets(ctx, PetListParams{Status: "available"})
	if status != remote.FetchOK {
		return "Unable to search for family-friendly pets. Please try again."
	}

	var kidFriendly []ShelterPet
	for _, pet := range page.Pets {
		if pet.GoodWithKids {
			kidFriendly = append(kidFriendly, pet)
		}
	}
	if len(kidFriendly) == 0 {
		return "We're updating our pet profiles. Please check back soon!"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "👶 **Family-Friendly Pets (%d):**\n\n", len(kidFriendly))
	for i, pet := range kidFriendly {
		if i == 5 {
			fmt.Fprintf(&b, "...and %d more!\n\n", len(kidFriendly)-5)
			break
		}
		fmt.Fprintf(&b, "• **%s** - %s (%d years)\n  Perfect for families with children!\n\n",
			pet.Name, breedOrMixed(&pet), pet.Age)
	}
	b.WriteString("These pets are great with kids!")
	return b.String()
}

func (s *ChatbotService) available(ctx context.Context, msg string) string {
	page, status := s.shelter.ListPets(ctx, PetListParams{Status: "available"})
	if status != remote.FetchOK {
		return "Unable to fetch pets from Shelter System right now. Please try again."
	}

	pets := page.Pets
	speciesName := "pets"
	switch {
	case strings.Contains(msg, "puppy") || strings.Contains(msg, "puppies"):
		pets, speciesName = filterPets(pets, "dog", 1), "puppies"
	case strings.Contains(msg, "kitten"):
		pets, speciesName = filterPets(pets, "cat", 1), "kittens"
	case strings.Contains(msg, "dog"):
		pets, speciesName = filterPets(pets, "dog", 0), "dogs"
	case strings.Contains(msg, "cat"):
		pets, speciesName = filterPets(pets, "cat", 0), "cats"
	}

	if len(pets) == 0 {
		return fmt.Sprintf("Sorry, we don't have any %s available right now. Check back soon!", speciesName)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "🐾 **Available %s (%d):**\n\n", titleCase(speciesName), len(pets))
	for i, pet := range pets {
		if i == 5 {
			fmt.Fprintf(&b, "...and %d more!\n\n", len(pets)-5)
			break
		}
		fmt.Fprintf(&b, "• **%s** (ID: %d)\n  %s, %d years, %s\n",
			pet.Name, pet.ID, breedOrMixed(&pet), pet.Age, pet.Gender)
		if pet.GoodWithKids {
			b.WriteString("  👶 Great with kids!\n")
		}
		b.WriteString("\n")
	}
	b.WriteString("Ask me about specific pets or their health status!")
	return b.String()
}

func (s *ChatbotService) search(ctx context.Context, msg string) string {
	term := chatbot.ExtractSearchTerm(msg)
	if term == "" {
		return "Tell me who you're looking for, for example 'Find Max' or 'Show me Labrador'."
	}

	page, status := s.shelter.ListPets(ctx, PetListParams{Status: "all", Search: term})
	if status != remote.FetchOK {
		return "Unable to search right now. Please try again."
	}
	if len(page.Pets) == 0 {
		return fmt.Sprintf("Sorry, I couldn't find any pets matching '%s'. "+
			"Try asking 'Show me available dogs' or 'Available cats'.", term)
	}

	pet := page.Pets[0]
	return fmt.Sprintf("🔍 **Found: %s!**\n\n"+
		"📋 **Details:**\n• ID: %d\n• Species: %s\n• Breed: %s\n• Age: %d years\n"+
		"• Gender: %s\n• Status: %s\n\n"+
		"💝 **Perfect For:**\n• Kids: %s\n• Other Pets: %s\n\n"+
		"Want to know more? Ask me to check %s's health status!",
		pet.Name, pet.ID, titleCase(pet.Species), breedOrMixed(&pet), pet.Age,
		titleCase(pet.Gender), titleCase(pet.Status),
		yesNo(pet.GoodWithKids), yesNo(pet.GoodWithPets), pet.Name)
}

func filterPets(pets []ShelterPet, species string, maxAge int) []ShelterPet {
	var out []ShelterPet
	for _, pet := range pets {
		if pet.Species != species {
			continue
		}
		if maxAge > 0 && pet.Age > maxAge {
			continue
		}
		out = append(out, pet)
	}
	return out
}

func breedOrMixed(pet *ShelterPet) string {
	if pet.Breed != "" {
		return pet.Breed
	}
	return "Mixed"
}

func yesNo(b bool) string {
	if b {
		return "✅ Yes"
	}
	return "❌ No"
}
