package socialmedia

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/julienschmidt/httprouter"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func RegisterHandler(svc AccountService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		req, err := decodeRegisterRequest(r.Body)
		w.Header().Set("Content-Type", "application/json")
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		acc, err := svc.Register(req)
		if err != nil {
			registerFailure.WithLabelValues(failureReason(err)).Inc()
			encodeError(err, w)
			return
		}

		registerSuccess.Inc()
		json.NewEncoder(w).Encode(acc)
	})
}

func LoginHandler(svc AccountService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		req, err := decodeLoginRequest(r.Body)
		w.Header().Set("Content-Type", "application/json")
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		// Blank credentials are a malformed request, not a failed match.
		if strings.TrimSpace(req.Username) == "" || strings.TrimSpace(req.Password) == "" {
			loginFailure.WithLabelValues("blank_credentials").Inc()
			encodeErrorWithStatus(ErrInvalidCredentials, http.StatusBadRequest, w)
			return
		}

		acc, err := svc.Login(req)
		if err != nil {
			loginFailure.WithLabelValues(failureReason(err)).Inc()
			encodeError(err, w)
			return
		}

		loginSuccess.Inc()
		json.NewEncoder(w).Encode(acc)
	})
}

func CreateMessageHandler(svc MessageService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		req, err := decodeCreateMessageRequest(r.Body)
		w.Header().Set("Content-Type", "application/json")
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		m, err := svc.CreateMessage(req)
		if err != nil {
			encodeError(err, w)
			return
		}

		messagesPosted.Inc()
		json.NewEncoder(w).Encode(m)
	})
}

func GetAllMessagesHandler(svc MessageService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		msgs, err := svc.GetAllMessages()
		if err != nil {
			encodeError(err, w)
			return
		}

		json.NewEncoder(w).Encode(msgs)
	})
}

// GetMessageHandler responds 200 with an empty body when the message
// does not exist; absence is not an error at this endpoint.
func GetMessageHandler(svc MessageService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		id, err := pathID(r, "messageId")
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		m, err := svc.GetMessageByID(id)
		if err != nil {
			encodeError(err, w)
			return
		}
		if m == nil {
			return
		}

		json.NewEncoder(w).Encode(m)
	})
}

func UpdateMessageHandler(svc MessageService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		id, err := pathID(r, "messageId")
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		req, err := decodeUpdateMessageRequest(r.Body)
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		rows, err := svc.UpdateMessage(id, req.Text)
		if err != nil {
			encodeError(err, w)
			return
		}
		if rows <= 0 {
			encodeErrorWithStatus(ErrMessageNotFound, http.StatusBadRequest, w)
			return
		}

		json.NewEncoder(w).Encode(rows)
	})
}

// DeleteMessageHandler responds 200 with the number of rows deleted, or
// an empty body when there was nothing to delete.
func DeleteMessageHandler(svc MessageService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		id, err := pathID(r, "messageId")
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		deleted, err := svc.DeleteMessage(id)
		if err != nil {
			encodeError(err, w)
			return
		}
		if !deleted {
			return
		}

		json.NewEncoder(w).Encode(1)
	})
}

func GetAccountMessagesHandler(svc MessageService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		id, err := pathID(r, "accountId")
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		msgs, err := svc.GetMessagesByAccountID(id)
		if err != nil {
			encodeError(err, w)
			return
		}

		json.NewEncoder(w).Encode(msgs)
	})
}

// NewRouter wires every endpoint; main and the handler tests share it.
func NewRouter(accounts AccountService, messages MessageService) http.Handler {
	router := httprouter.New()
	router.Handler(http.MethodPost, "/register", RegisterHandler(accounts))
	router.Handler(http.MethodPost, "/login", LoginHandler(accounts))
	router.Handler(http.MethodPost, "/messages", CreateMessageHandler(messages))
	router.Handler(http.MethodGet, "/messages", GetAllMessagesHandler(messages))
	router.Handler(http.MethodGet, "/messages/:messageId", GetMessageHandler(messages))
	router.Handler(http.MethodPatch, "/messages/:messageId", UpdateMessageHandler(messages))
	router.Handler(http.MethodDelete, "/messages/:messageId", DeleteMessageHandler(messages))
	router.Handler(http.MethodGet, "/accounts/:accountId/messages", GetAccountMessagesHandler(messages))
	router.Handler(http.MethodGet, "/metrics", promhttp.Handler())

	return RequestID(AccessLog(Instrument(router)))
}

func encodeError(err error, w http.ResponseWriter) {
	switch err {
	case ErrExistingUsername:
		w.WriteHeader(http.StatusConflict)
	case ErrInvalidCredentials:
		w.WriteHeader(http.StatusUnauthorized)
	case ErrInvalidUsername, ErrInvalidPassword,
		ErrInvalidMessageText, ErrMessageTooLong, ErrUnknownAuthor:
		w.WriteHeader(http.StatusBadRequest)
	default:
		w.WriteHeader(http.StatusInternalServerError)
	}
	json.NewEncoder(w).Encode(map[string]interface{}{
		"error": err.Error(),
	})
}

func encodeErrorWithStatus(err error, status int, w http.ResponseWriter) {
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"error": err.Error(),
	})
}

func failureReason(err error) string {
	switch err {
	case ErrInvalidUsername:
		return "blank_username"
	case ErrInvalidPassword:
		return "short_password"
	case ErrExistingUsername:
		return "username_taken"
	case ErrInvalidCredentials:
		return "no_match"
	default:
		return "storage"
	}
}

func pathID(r *http.Request, name string) (int64, error) {
	params := httprouter.ParamsFromContext(r.Context())
	return strconv.ParseInt(params.ByName(name), 10, 64)
}

func decodeRegisterRequest(body io.ReadCloser) (registerRequest, error) {
	req := registerRequest{}
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		return registerRequest{}, err
	}
	return req, nil
}

func decodeLoginRequest(body io.ReadCloser) (loginRequest, error) {
	req := loginRequest{}
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		return loginRequest{}, err
	}
	return req, nil
}

func decodeCreateMessageRequest(body io.ReadCloser) (createMessageRequest, error) {
	req := createMessageRequest{}
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		return createMessageRequest{}, err
	}
	return req, nil
}

func decodeUpdateMessageRequest(body io.ReadCloser) (updateMessageRequest, error) {
	req := updateMessageRequest{}
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		return updateMessageRequest{}, err
	}
	return req, nil
}
