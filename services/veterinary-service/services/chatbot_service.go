package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/whiteheadbella/vet-management/services/common/chatbot"
	"github.com/whiteheadbella/vet-management/services/veterinary-service/repository"
	"go.uber.org/zap"
)

// ChatbotService answers free-text questions about health records,
// appointments and the vet roster. Ordered rule table; first match wins,
// no conversation state between calls.
type ChatbotService struct {
	records      repository.RecordRepository
	appointments repository.AppointmentRepository
	vets         repository.VetRepository
	logger       *zap.Logger
	rules        []chatbot.Rule
}

func NewChatbotService(
	records repository.RecordRepository,
	appointments repository.AppointmentRepository,
	vets repository.VetRepository,
	logger *zap.Logger,
) *ChatbotService {
	s := &ChatbotService{records: records, appointments: appointments, vets: vets, logger: logger}
	s.rules = []chatbot.Rule{
		{Match: chatbot.MatchAny("hello", "hi", "hey", "greetings"), Handle: s.greet},
		{Match: chatbot.MatchAny("help", "what can you do"), Handle: s.help},
		{Match: chatbot.MatchAny("how many", "total", "statistics", "stats"), Handle: s.stats},
		{Match: s.matchPetLookup, Handle: s.petLookup},
		{Match: chatbot.MatchAny("health", "record"), Handle: s.recordsInfo},
		{Match: chatbot.MatchAny("appointment"), Handle: s.appointmentsInfo},
		{Match: chatbot.MatchAny("vet"), Handle: s.vetsInfo},
	}
	return s
}

// Reply processes one chat message. Identical messages always yield the
// same branch regardless of prior turns.
func (s *ChatbotService) Reply(ctx context.Context, message string) string {
	msg := strings.ToLower(strings.TrimSpace(message))
	if msg == "" {
		return "Please ask me something about veterinary records!"
	}
	for _, rule := range s.rules {
		if rule.Match(msg) {
			return rule.Handle(ctx, msg)
		}
	}
	return "I'm not sure how to answer that. Here are some things you can ask me:\n\n" +
		"💬 \"How many health records?\"\n" +
		"💬 \"Show upcoming appointments\"\n" +
		"💬 \"Show available vets\"\n" +
		"💬 \"Find record for pet 1\"\n" +
		"💬 \"Today's appointments\"\n\n" +
		"Or just type 'help' to see all my features!"
}

func (s *ChatbotService) greet(ctx context.Context, msg string) string {
	return "Hello! 👋 I'm the Veterinary Assistant. I can help you with health records, " +
		"appointments, and veterinarian information. Try asking 'How many health records?' " +
		"or 'Show upcoming appointments'."
}

func (s *ChatbotService) help(ctx context.Context, msg string) string {
	return "I can help you with:\n\n" +
		"📊 Statistics: \"How many health records?\"\n" +
		"📅 Appointments: \"Upcoming appointments\" or \"Today's appointments\"\n" +
		"🏥 Health Records: \"Show recent records\" or \"Find record for pet [id]\"\n" +
		"👨‍⚕️ Veterinarians: \"Show vets\" or \"Available vets\"\n" +
		"🔍 Search: \"Find record for pet [id]\"\n\n" +
		"Just ask naturally!"
}

func (s *ChatbotService) stats(ctx context.Context, msg string) string {
	totalRecords, err1 := s.records.Count(ctx)
	totalAppointments, err2 := s.appointments.Count(ctx)
	totalVets, err3 := s.vets.Count(ctx)
	if err1 != nil || err2 != nil || err3 != nil {
		s.logger.Warn("chatbot stats query failed")
		return "Statistics are temporarily unavailable. Please try again."
	}

	switch {
	case strings.Contains(msg, "record"):
		return fmt.Sprintf("📊 We have **%d health records** in our system.", totalRecords)
	case strings.Contains(msg, "appointment"):
		upcoming, _ := s.appointments.CountUpcoming(ctx, time.Now())
		return fmt.Sprintf("📅 We have **%d total appointments** (%d upcoming).", totalAppointments, upcoming)
	case strings.Contains(msg, "vet"):
		return fmt.Sprintf("👨‍⚕️ We have **%d veterinarians** on staff.", totalVets)
	default:
		return fmt.Sprintf("📊 **Veterinary System Statistics:**\n\n"+
			"🏥 Health Records: **%d**\n📅 Appointments: **%d**\n👨‍⚕️ Veterinarians: **%d**",
			totalRecords, totalAppointments, totalVets)
	}
}

func (s *ChatbotService) matchPetLookup(msg string) bool {
	return strings.Contains(msg, "pet") && chatbot.ExtractPetID(msg) != 0
}

func (s *ChatbotService) petLookup(ctx context.Context, msg string) string {
	petID := chatbot.ExtractPetID(msg)

	record, err := s.records.FindByPetID(ctx, petID)
	if err != nil {
		return fmt.Sprintf("No health record found for Pet ID %d. The pet may not have been examined yet.", petID)
	}

	apptCount, _ := s.appointments.CountByPetID(ctx, petID)
	checkup := "No checkup recorded"
	if record.LastCheckup != nil {
		checkup = record.LastCheckup.Format("2006-01-02")
	}
	weight := "Not recorded"
	if record.Weight > 0 {
		weight = fmt.Sprintf("%.1f kg", record.Weight)
	}

	return fmt.Sprintf("🏥 **Health Record for Pet ID %d:**\n\n"+
		"📋 Pet Name: **%s**\n🐾 Species: %s\n🔖 Breed: %s\n📅 Last Checkup: %s\n"+
		"⚖️ Weight: %s\n💉 Vaccination Records: %d on file\n📅 Appointments: %d",
		petID, orUnknown(record.PetName), orUnknown(record.Species), orUnknown(record.Breed),
		checkup, weight, len(record.Vaccinations), apptCount)
}

func (s *ChatbotService) recordsInfo(ctx context.Context, msg string) string {
	if strings.Contains(msg, "recent") || strings.Contains(msg, "latest") {
		records, err := s.records.FindRecent(ctx, 5)
		if err != nil {
			s.logger.Warn("chatbot recent records query failed", zap.Error(err))
			return "I couldn't look that up right now. Please try again."
		}
		if len(records) == 0 {
			return "No health records found in the system."
		}
		var b strings.Builder
		b.WriteString("🏥 **Recent Health Records:**\n\n")
		for _, record := range records {
			checkup := "No checkup"
			if record.LastCheckup != nil {
				checkup = record.LastCheckup.Format("2006-01-02")
			}
			fmt.Fprintf(&b, "• Pet ID %d (%s): Last checkup %s\n",
				record.PetID, orUnknown(record.PetName), checkup)
		}
		return b.String()
	}

	total, err := s.records.Count(ctx)
	if err != nil {
		s.logger.Warn("chatbot records count failed", zap.Error(err))
		return "I couldn't look that up right now. Please try again."
	}
	recent, _ := s.records.CountCheckedUpSince(ctx, time.Now().AddDate(0, 0, -30))
	return fmt.Sprintf("🏥 We have **%d total health records** (%d updated in the last 30 days).", total, recent)
}

func (s *ChatbotService) appointmentsInfo(ctx context.Context, msg string) string {
	now := time.Now()

	switch {
	case strings.Contains(msg, "today"):
		dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		appts, err := s.appointments.FindBetween(ctx, dayStart, dayStart.AddDate(0, 0, 1))
		if err != nil {
			s.logger.Warn("chatbot today appointments query failed", zap.Error(err))
			return "I couldn't look that up right now. Please try again."
		}
		if len(appts) == 0 {
			return "No appointments scheduled for today. All clear! ✅"
		}
		var b strings.Builder
		fmt.Fprintf(&b, "📅 **Today's Appointments (%d):**\n\n", len(appts))
		for _, appt := range appts {
			fmt.Fprintf(&b, "• %s - Pet ID %d (%s) with %s\n  Reason: %s\n",
				appt.Date.Format("15:04"), appt.PetID, orUnknown(appt.PetName),
				s.vetName(ctx, appt.VetID), appt.Reason)
		}
		return b.String()

	case strings.Contains(msg, "upcoming") || strings.Contains(msg, "future") || strings.Contains(msg, "scheduled"):
		appts, err := s.appointments.FindUpcoming(ctx, now, 5)
		if err != nil {
			s.logger.Warn("chatbot upcoming appointments query failed", zap.Error(err))
			return "I couldn't look that up right now. Please try again."
		}
		if len(appts) == 0 {
			return "No upcoming appointments scheduled."
		}
		var b strings.Builder
		b.WriteString("📅 **Upcoming Appointments:**\n\n")
		for _, appt := range appts {
			fmt.Fprintf(&b, "• %s - Pet ID %d (%s) with %s\n",
				appt.Date.Format("2006-01-02 15:04"), appt.PetID, orUnknown(appt.PetName),
				s.vetName(ctx, appt.VetID))
		}
		return b.String()

	default:
		total, err := s.appointments.Count(ctx)
		if err != nil {
			s.logger.Warn("chatbot appointments count failed", zap.Error(err))
			return "I couldn't look that up right now. Please try again."
		}
		upcoming, _ := s.appointments.CountUpcoming(ctx, now)
		return fmt.Sprintf("📅 **%d total appointments** (%d upcoming, %d completed).",
			total, upcoming, total-upcoming)
	}
}

func (s *ChatbotService) vetsInfo(ctx context.Context, msg string) string {
	if strings.Contains(msg, "available") || strings.Contains(msg, "list") || strings.Contains(msg, "show") {
		vets, err := s.vets.FindAll(ctx)
		if err != nil {
			s.logger.Warn("chatbot vets query failed", zap.Error(err))
			return "I couldn't look that up right now. Please try again."
		}
		if len(vets) == 0 {
			return "No veterinarians found in the system."
		}
		var b strings.Builder
		b.WriteString("👨‍⚕️ **Our Veterinarians:**\n\n")
		for _, vet := range vets {
			spec := vet.Specialization
			if spec == "" {
				spec = "General Practice"
			}
			fmt.Fprintf(&b, "• **Dr. %s** (%s)\n  📧 %s | 📞 %s\n", vet.Name, spec, vet.Email, vet.Phone)
		}
		return b.String()
	}

	count, err := s.vets.Count(ctx)
	if err != nil {
		s.logger.Warn("chatbot vets count failed", zap.Error(err))
		return "I couldn't look that up right now. Please try again."
	}
	specs, _ := s.vets.Specializations(ctx)
	if len(specs) > 0 {
		return fmt.Sprintf("👨‍⚕️ We have **%d veterinarians** specializing in: %s", count, strings.Join(specs, ", "))
	}
	return fmt.Sprintf("👨‍⚕️ We have **%d veterinarians** on staff.", count)
}

func (s *ChatbotService) vetName(ctx context.Context, vetID int64) string {
	vet, err := s.vets.FindByID(ctx, vetID)
	if err != nil {
		return "Unknown"
	}
	return "Dr. " + vet.Name
}

func orUnknown(value string) string {
	if value == "" {
		return "Unknown"
	}
	return value
}
