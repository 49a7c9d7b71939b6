package notify

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotifyResult_Success(t *testing.T) {
	t.Parallel()

	c := NewCenter()
	c.NotifyResult(true, "일괄 저장", "3개 항목 저장 완료")

	toasts := c.Toasts()
	require.Len(t, toasts, 1)
	assert.Equal(t, KindSuccess, toasts[0].Kind)
	assert.Equal(t, "성공", toasts[0].Title)
	assert.Equal(t, "일괄 저장 완료", toasts[0].Message)
	assert.Equal(t, SuccessTTL, toasts[0].TTL)

	m, ok := c.Modal()
	require.True(t, ok)
	assert.Equal(t, "성공", m.Title)
	assert.Equal(t, "일괄 저장 완료\n\n3개 항목 저장 완료", m.Message)
}

func TestNotifyResult_SuccessWithoutDetail(t *testing.T) {
	t.Parallel()

	c := NewCenter()
	c.NotifyResult(true, "행 추가", "")
	m, ok := c.Modal()
	require.True(t, ok)
	assert.Equal(t, "행 추가 완료", m.Message)
}

func TestNotifyResult_Failure(t *testing.T) {
	t.Parallel()

	c := NewCenter()
	c.NotifyResult(false, "개별 저장(ID:7)", "db locked")

	toasts := c.Toasts()
	require.Len(t, toasts, 1)
	assert.Equal(t, KindError, toasts[0].Kind)
	assert.Equal(t, "실패", toasts[0].Title)
	assert.Equal(t, "개별 저장(ID:7) 실패: db locked", toasts[0].Message)
	assert.Equal(t, FailureTTL, toasts[0].TTL)

	m, ok := c.Modal()
	require.True(t, ok)
	assert.Equal(t, "실패", m.Title)
	assert.Equal(t, "개별 저장(ID:7) 실패\n\ndb locked", m.Message)
}

func TestNotifyResult_FailureFallbackMessage(t *testing.T) {
	t.Parallel()

	c := NewCenter()
	c.NotifyResult(false, "목록 조회", "")
	toasts := c.Toasts()
	require.Len(t, toasts, 1)
	assert.Equal(t, "목록 조회 실패: 원인을 확인해주세요.", toasts[0].Message)
}

func TestToasts_IndependentLifetimes(t *testing.T) {
	t.Parallel()

	c := NewCenter()
	short := c.Toast(KindInfo, "a", "short", 20*time.Millisecond)
	long := c.Toast(KindInfo, "b", "long", time.Hour)
	require.NotEqual(t, short, long)
	require.Len(t, c.Toasts(), 2)

	assert.Eventually(t, func() bool { return len(c.Toasts()) == 1 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, long, c.Toasts()[0].ID)

	c.DismissToast(long)
	assert.Empty(t, c.Toasts())
	c.DismissToast("unknown")
}

func TestModal_OneAtATime(t *testing.T) {
	t.Parallel()

	c := NewCenter()
	var changes int32
	c.OnChange = func() { atomic.AddInt32(&changes, 1) }

	c.ShowModal("첫째", "a")
	c.ShowModal("둘째", "b")
	m, ok := c.Modal()
	require.True(t, ok)
	assert.Equal(t, "둘째", m.Title)

	c.CloseModal()
	_, ok = c.Modal()
	assert.False(t, ok)
	c.CloseModal()
	assert.Equal(t, int32(3), atomic.LoadInt32(&changes))
}
