package ratelimit

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	domain "github.com/NeuralTrust/TrustGuard/pkg/domain/ratelimit"
)

const (
	counterKeyPattern     = "ratelimit:%s:%s:%d"
	blockKeyPattern       = "ratelimit:%s:%s:block"
	blockNoticeKeyPattern = "ratelimit:%s:%s:block_notice"
	violationKeyPattern   = "ratelimit:%s:%s:violations"
)

// KeyBuilder turns (category, subject) pairs into store keys. Subjects are
// hashed so raw addresses and user ids never reach the store.
type KeyBuilder struct {
	secret []byte
}

func NewKeyBuilder(secret string) *KeyBuilder {
	return &KeyBuilder{secret: []byte(secret)}
}

func (k *KeyBuilder) HashSubject(subject domain.Subject) string {
	var sum []byte
	if len(k.secret) > 0 {
		mac := hmac.New(sha256.New, k.secret)
		mac.Write([]byte(subject.String()))
		sum = mac.Sum(nil)
	} else {
		digest := sha256.Sum256([]byte(subject.String()))
		sum = digest[:]
	}
	return hex.EncodeToString(sum)
}

func (k *KeyBuilder) Counter(category domain.Category, subject domain.Subject, windowIndex int64) string {
	return fmt.Sprintf(counterKeyPattern, category, k.HashSubject(subject), windowIndex)
}

func (k *KeyBuilder) Block(category domain.Category, subject domain.Subject) string {
	return fmt.Sprintf(blockKeyPattern, category, k.HashSubject(subject))
}

func (k *KeyBuilder) BlockNotice(category domain.Category, subject domain.Subject) string {
	return fmt.Sprintf(blockNoticeKeyPattern, category, k.HashSubject(subject))
}

func (k *KeyBuilder) Violations(category domain.Category, subject domain.Subject) string {
	return fmt.Sprintf(violationKeyPattern, category, k.HashSubject(subject))
}
