package services

import (
	"errors"
	"strings"

	"blogapp_backend/internal/models"
	"blogapp_backend/internal/repositories"
	"blogapp_backend/internal/services/dto"
	"blogapp_backend/pkg/apperrors"
)

// MessagePusher delivers a stored message to the receiver's open socket,
// if any. Implemented by the websocket hub.
type MessagePusher interface {
	PushMessage(userID string, message dto.MessageDTO)
}

type MessageService interface {
	// Send stores a direct message and notifies the receiver. The
	// receiver is addressed by username and must exist. The conversation
	// id is derived from the two participant ids, so either side sending
	// lands in the same conversation.
	Send(senderID string, req *dto.SendMessageRequest) (*dto.MessageDTO, error)

	// GetConversation loads the full thread with a peer and marks every
	// message addressed to the viewer as read.
	GetConversation(viewerID, peerID string) (*dto.ConversationResponse, error)

	// GetInbox lists the viewer's conversations, newest activity first,
	// plus the mutual-follow contacts they can start a thread with.
	GetInbox(viewerID string) (*dto.InboxResponse, error)

	GetUnreadCount(viewerID string) (int64, error)

	SetPusher(pusher MessagePusher)
}

type messageService struct {
	messageRepo     repositories.MessageRepository
	userRepo        repositories.UserRepository
	followRepo      repositories.FollowRepository
	notificationSvc NotificationService
	pusher          MessagePusher
}

func NewMessageService(
	messageRepo repositories.MessageRepository,
	userRepo repositories.UserRepository,
	followRepo repositories.FollowRepository,
	notificationSvc NotificationService,
) MessageService {
	return &messageService{
		messageRepo:     messageRepo,
		userRepo:        userRepo,
		followRepo:      followRepo,
		notificationSvc: notificationSvc,
	}
}

// ConversationID derives the canonical conversation key for a pair of
// users: the two ids ordered lexicographically and joined with "_".
// Symmetric in its arguments.
func ConversationID(userA, userB string) string {
	if strings.Compare(userA, userB) > 0 {
		userA, userB = userB, userA
	}
	return userA + "_" + userB
}

func (s *messageService) SetPusher(pusher MessagePusher) {
	s.pusher = pusher
}

func (s *messageService) Send(senderID string, req *dto.SendMessageRequest) (*dto.MessageDTO, error) {
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, apperrors.ValidationError(map[string]string{"content": "Message content cannot be empty"})
	}

	sender, err := s.userRepo.FindByID(senderID)
	if err != nil {
		return nil, s.mapUserErr(err)
	}
	receiver, err := s.userRepo.FindByUserName(req.ReceiverUsername)
	if err != nil {
		return nil, s.mapUserErr(err)
	}
	if receiver.ID == senderID {
		return nil, apperrors.ErrSelfAction
	}

	message := &models.Message{
		Content:        content,
		SenderID:       senderID,
		ReceiverID:     receiver.ID,
		ConversationID: ConversationID(senderID, receiver.ID),
	}
	if err := s.messageRepo.Create(message); err != nil {
		return nil, apperrors.InternalError(err)
	}

	notifyMsg, notifyLink := MessageNotification(sender.Name, message.ConversationID)
	s.notificationSvc.Notify(receiver.ID, NotificationTypeNewMessage, notifyMsg, notifyLink,
		map[string]interface{}{"conversation_id": message.ConversationID, "sender_id": senderID})

	out := dto.MessageToDTO(message, senderID)
	if s.pusher != nil {
		receiverView := dto.MessageToDTO(message, receiver.ID)
		s.pusher.PushMessage(receiver.ID, receiverView)
	}
	return &out, nil
}

func (s *messageService) GetConversation(viewerID, peerID string) (*dto.ConversationResponse, error) {
	if viewerID == peerID {
		return nil, apperrors.ErrSelfAction
	}

	peer, err := s.userRepo.FindByID(peerID)
	if err != nil {
		return nil, s.mapUserErr(err)
	}

	conversationID := ConversationID(viewerID, peerID)
	messages, err := s.messageRepo.FindByConversation(conversationID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	// Opening a thread reads it. Only messages addressed to the viewer
	// are marked, and repeating the call is harmless.
	if _, err := s.messageRepo.MarkConversationRead(conversationID, viewerID); err != nil {
		return nil, apperrors.InternalError(err)
	}

	out := &dto.ConversationResponse{
		ConversationID: conversationID,
		Peer:           dto.UserToContact(peer),
		Messages:       make([]dto.MessageDTO, 0, len(messages)),
	}
	for i := range messages {
		msg := dto.MessageToDTO(&messages[i], viewerID)
		// Reflect the markRead that just happened.
		if msg.ReceiverID == viewerID {
			msg.IsRead = true
		}
		out.Messages = append(out.Messages, msg)
	}
	return out, nil
}

func (s *messageService) GetInbox(viewerID string) (*dto.InboxResponse, error) {
	conversationIDs, err := s.messageRepo.FindConversationIDs(viewerID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	out := &dto.InboxResponse{
		Conversations: make([]dto.ConversationDTO, 0, len(conversationIDs)),
		Contacts:      []dto.ContactDTO{},
	}

	for _, conversationID := range conversationIDs {
		last, err := s.messageRepo.FindLatestInConversation(conversationID)
		if err != nil {
			if errors.Is(err, repositories.ErrMessageNotFound) {
				continue
			}
			return nil, apperrors.InternalError(err)
		}

		peer := last.Sender
		if last.SenderID == viewerID {
			peer = last.Receiver
		}
		if peer == nil {
			continue
		}

		unread, err := s.messageRepo.CountUnreadInConversation(conversationID, viewerID)
		if err != nil {
			return nil, apperrors.InternalError(err)
		}

		out.Conversations = append(out.Conversations, dto.ConversationDTO{
			ConversationID: conversationID,
			Peer:           dto.UserToContact(peer),
			LastMessage:    dto.MessageToDTO(last, viewerID),
			UnreadCount:    unread,
		})
	}

	// Contacts are mutual follows: people the viewer follows who follow
	// back. They seed the "new conversation" picker.
	mutualIDs, err := s.followRepo.MutualIDs(viewerID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	for _, id := range mutualIDs {
		contact, err := s.userRepo.FindByID(id)
		if err != nil {
			if errors.Is(err, repositories.ErrUserNotFound) {
				continue
			}
			return nil, apperrors.InternalError(err)
		}
		out.Contacts = append(out.Contacts, dto.UserToContact(contact))
	}

	total, err := s.messageRepo.CountUnread(viewerID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	out.TotalUnread = total
	return out, nil
}

func (s *messageService) GetUnreadCount(viewerID string) (int64, error) {
	count, err := s.messageRepo.CountUnread(viewerID)
	if err != nil {
		return 0, apperrors.InternalError(err)
	}
	return count, nil
}

func (s *messageService) mapUserErr(err error) error {
	if errors.Is(err, repositories.ErrUserNotFound) {
		return apperrors.ErrNotFound(err)
	}
	return apperrors.InternalError(err)
}
