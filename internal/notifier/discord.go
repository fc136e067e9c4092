package notifier

import (
	"fmt"
	"log"

	"github.com/bwmarrin/discordgo"
	"github.com/freevisa/visa-api/internal/models"
)

type Notifier interface {
	NotifyApplication(application models.VisaApplication) error
}

type DiscordNotifier struct {
	session   *discordgo.Session
	channelID string
}

func NewDiscordNotifier(session *discordgo.Session, channelID string) *DiscordNotifier {
	return &DiscordNotifier{
		session:   session,
		channelID: channelID,
	}
}

func (n *DiscordNotifier) NotifyApplication(application models.VisaApplication) error {
	if n.session == nil {
		return fmt.Errorf("discord session is nil")
	}
	if n.channelID == "" {
		return fmt.Errorf("discord channel ID is empty")
	}

	message := fmt.Sprintf("🛂 **New Visa Application**\n**Applicant:** %s %s (%s)\n**Country:** %s\n**Visa Type:** %s\n**Fee:** $%.2f\n**Method:** %s\n**Applied:** %s",
		application.ApplicantFirstName,
		application.ApplicantLastName,
		application.UserEmail,
		application.Country,
		application.VisaType,
		application.Fee,
		application.ApplicationMethod,
		application.AppliedDate.Format("2006-01-02"),
	)

	_, err := n.session.ChannelMessageSend(n.channelID, message)
	if err != nil {
		log.Printf("Failed to send discord message: %v", err)
		return err
	}

	return nil
}
