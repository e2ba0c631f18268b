package pix

import (
	"fmt"
	"strings"
)

// PIXコード生成（簡易版）。
// タグ順・タグIDは固定。CRCは計算しない（スキャナ互換の完全版は対象外）。

const (
	merchantNameMaxLen = 25
	merchantCity       = "SAO PAULO"
	gui                = "br.gov.bcb.pix"
)

// 生成の入力。Amountはセンターボ（1/100 BRL）。
type Input struct {
	Key         string
	Amount      int64
	Description string
	Merchant    string
}

// QRコード用文字列とコピペ用コード。内容は同一。
type Payload struct {
	QRCode    string `json:"qr_code"`
	CopyPaste string `json:"copy_paste"`
}

// Buildは同じ入力に対して常にバイト単位で同一のコードを返す。
func Build(in Input) Payload {
	var b strings.Builder

	b.WriteString(tlv("00", "01"))
	b.WriteString(tlv("26", tlv("00", gui)+tlv("01", in.Key)))
	b.WriteString(tlv("52", "0000"))
	b.WriteString(tlv("53", "986"))
	b.WriteString(tlv("58", "BR"))
	b.WriteString(tlv("59", sanitizeMerchant(in.Merchant)))
	b.WriteString(tlv("60", merchantCity))
	b.WriteString(tlv("62", tlv("05", "***")))
	b.WriteString(tlv("63", formatAmount(in.Amount)))

	code := b.String()
	return Payload{QRCode: code, CopyPaste: code}
}

// tag + 2桁長 + 値
func tlv(id string, value string) string {
	return fmt.Sprintf("%s%02d%s", id, len(value), value)
}

// 店名はフィールド上限（25文字）に切り詰める
func sanitizeMerchant(name string) string {
	trimmed := strings.TrimSpace(name)
	runes := []rune(trimmed)
	if len(runes) > merchantNameMaxLen {
		runes = runes[:merchantNameMaxLen]
	}
	return string(runes)
}

// センターボを"D.CC"形式へ
func formatAmount(cents int64) string {
	if cents < 0 {
		cents = 0
	}
	return fmt.Sprintf("%d.%02d", cents/100, cents%100)
}
