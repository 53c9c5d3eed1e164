// Package domain defines the core domain models for the chat backend.
package domain

// MessageType is the role of a stored chat interaction.
type MessageType string

const (
	MessageTypeUser MessageType = "USER"
	MessageTypeBot  MessageType = "BOT"
)

// Context labels produced by the classifier. Storage treats labels as free-form
// strings, so an external model may return others.
const (
	ContextMarketingOptimization = "MARKETING_OPTIMIZATION"
	ContextTechStack             = "TECH_STACK"
	ContextGeneralInquiry        = "GENERAL_INQUIRY"
	ContextDefaultProcessing     = "DEFAULT_PROCESSING"
)

// CampaignStatus is the lifecycle status of a campaign.
type CampaignStatus string

const (
	CampaignStatusDraft CampaignStatus = "draft"
)
