package usecase

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ORD-{UTC秒}-{ランダム6桁} の形式。
// 同一秒内の複数注文はランダム部分で避ける。最終的な一意性はDBのユニーク制約。
func GenerateOrderNumber(now time.Time) string {
	ts := now.UTC().Format("20060102150405")
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:6])
	return fmt.Sprintf("ORD-%s-%s", ts, suffix)
}
