package page

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatUnits(t *testing.T) {
	assert.Equal(t, "0.0021", FormatEther("2100000000000000"))
	assert.Equal(t, "1", FormatEther("1000000000000000000"))
	assert.Equal(t, "0", FormatEther("0"))
	assert.Equal(t, "not-a-number", FormatEther("not-a-number"))
	assert.Equal(t, "1.5", FormatGwei("1500000000"))
	assert.Equal(t, "0.000000001", FormatGwei("1"))
}

func TestChecksumAddress(t *testing.T) {
	assert.Equal(t, "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed", ChecksumAddress("0x5aaeb6053f3e94c9b9a09f33669435e7ef1beaed"))
	assert.Equal(t, "not an address", ChecksumAddress("not an address"))
}

func TestDescribeInput(t *testing.T) {
	assert.Equal(t, InputInfo{Size: 6, MethodID: "0xa9059cbb"}, DescribeInput("0xa9059cbb0000"))
	assert.Equal(t, InputInfo{Size: 0}, DescribeInput("0x"))
	assert.Equal(t, InputInfo{}, DescribeInput("zz"))
}

func TestFormatTokenAmount(t *testing.T) {
	assert.Equal(t, "1", FormatTokenAmount("1000000", "6"))
	assert.Equal(t, "0.25", FormatTokenAmount("250000", "6"))
	assert.Equal(t, "42", FormatTokenAmount("42", "0"))
	assert.Equal(t, "42", FormatTokenAmount("42", ""))
	assert.Equal(t, "x", FormatTokenAmount("x", "18"))
}
