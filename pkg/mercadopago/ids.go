package mercadopago

import (
	"fmt"
	"strings"
)

// 外部 ID 生成规则 (v2)
//
// Store/POS 资源不在本地建映射表，而是用 MP 侧的 external_id 做幂等定位：
// external_id 是 MP 用户 ID 的纯函数，换库、换环境都能重新找回同一批资源。
// 公式本身就是契约，改动即丢失历史资源的可发现性，版本后缀 v2 就是为此留的。
const (
	externalIDPrefix = "easypay"
	externalIDVer    = "v2"

	// 附加 POS 用 ADD 作为字母数字分隔符 (MP 的 external_id 只接受字母数字)
	additionalPosSep = "ADD"
)

// sanitizeUserID 剔除非字母数字字符
// MP 返回的 user_id 是数字，但这里统一按字符串清洗，防御历史数据里的脏格式
func sanitizeUserID(userID string) string {
	var b strings.Builder
	for _, r := range userID {
		if (r >= '0' && r <= '9') || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// StoreExternalID 生成店铺(Sucursal)的确定性外部 ID
// 格式: easypayStore<userID>v2
func StoreExternalID(userID int64) string {
	return StoreExternalIDFromString(fmt.Sprintf("%d", userID))
}

// StoreExternalIDFromString 字符串版入口，测试和脏数据清洗用
func StoreExternalIDFromString(userID string) string {
	return externalIDPrefix + "Store" + sanitizeUserID(userID) + externalIDVer
}

// PosExternalID 生成收银点(Caja)的确定性外部 ID
// suffix 为空 -> 主 POS: easypayPOS<userID>v2
// suffix 非空 -> 附加 POS: easypayPOS<userID>ADD<suffix>
func PosExternalID(userID int64, suffix string) string {
	return PosExternalIDFromString(fmt.Sprintf("%d", userID), suffix)
}

// PosExternalIDFromString 字符串版入口
func PosExternalIDFromString(userID, suffix string) string {
	base := externalIDPrefix + "POS" + sanitizeUserID(userID)
	if suffix == "" {
		return base + externalIDVer
	}
	return base + additionalPosSep + suffix
}
