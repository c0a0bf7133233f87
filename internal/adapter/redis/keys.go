package redis

import (
	"strconv"

	"github.com/google/uuid"

	"github.com/Redbeardred/Oberyn-v0.2/internal/domain"
)

const (
	productsSetKey     = "products"
	refreshTokenKey    = "marketplace:refresh_token"
	productPrefix      = "product:"
	questionPrefix     = "question:"
	answerPrefix       = "answer:"
	userPrefix         = "user:"
	questionStatusPref = "questions:status:"
)

func productKey(id uuid.UUID) string { return productPrefix + id.String() }

func productExternalKey(itemID string) string { return productPrefix + "external:" + itemID }

func productQuestionsKey(id uuid.UUID) string { return productKey(id) + ":questions" }

func questionKey(id uuid.UUID) string { return questionPrefix + id.String() }

func questionExternalKey(externalID int64) string {
	return questionPrefix + "external:" + strconv.FormatInt(externalID, 10)
}

func questionAnswersKey(id uuid.UUID) string { return questionKey(id) + ":answers" }

func questionStatusKey(status domain.QuestionStatus) string {
	return questionStatusPref + string(status)
}

func answerKey(id uuid.UUID) string { return answerPrefix + id.String() }

func userKey(id uuid.UUID) string { return userPrefix + id.String() }

func userEmailKey(email string) string { return userPrefix + "email:" + email }
