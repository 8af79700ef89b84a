package usecase

import (
	"crypto/rand"
	"fmt"
	"io"
	"time"
)

const orderIDAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

const orderIDSuffixLen = 8

// 注文IDを作る約束（テストで差し替える）
type OrderIDGenerator interface {
	NewOrderID() (string, error)
}

// 現在の時間
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}

// <prefix>-<UTCのYYYYMMDD>-<英大文字数字8桁>
// 一意性はDBのunique indexに任せる（確率的にしか保証しない）
type RandomOrderIDGenerator struct {
	prefix string
	clock  Clock
	random io.Reader
}

func NewRandomOrderIDGenerator(prefix string, clock Clock) *RandomOrderIDGenerator {
	if clock == nil {
		clock = SystemClock{}
	}
	return &RandomOrderIDGenerator{
		prefix: prefix,
		clock:  clock,
		random: rand.Reader,
	}
}

func (g *RandomOrderIDGenerator) NewOrderID() (string, error) {
	suffix, err := randomString(g.random, orderIDSuffixLen)
	if err != nil {
		return "", fmt.Errorf("generate order id: %w", err)
	}
	date := g.clock.Now().UTC().Format("20060102")
	return g.prefix + "-" + date + "-" + suffix, nil
}

// 36文字に偏りなく割り当てるため、252以上のバイトは捨てる
func randomString(r io.Reader, n int) (string, error) {
	const maxByte = 256 - (256 % len(orderIDAlphabet))

	out := make([]byte, 0, n)
	buf := make([]byte, n*2)
	for len(out) < n {
		if _, err := io.ReadFull(r, buf); err != nil {
			return "", err
		}
		for _, b := range buf {
			if int(b) >= maxByte {
				continue
			}
			out = append(out, orderIDAlphabet[int(b)%len(orderIDAlphabet)])
			if len(out) == n {
				break
			}
		}
	}
	return string(out), nil
}
