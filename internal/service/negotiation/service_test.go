package negotiation

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"espmanager/internal/domain/models"
	"espmanager/internal/domain/ports"
	"espmanager/internal/infrastructure/logger"
	"espmanager/internal/infrastructure/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakePort отдает заранее заданный ответ, дальше имитирует тишину.
type fakePort struct {
	response []byte
	readErr  error
	writeErr error
	closed   bool
	reads    int
}

func (p *fakePort) Read(buf []byte) (int, error) {
	if p.closed {
		return 0, models.ErrPortClosed
	}
	if p.readErr != nil {
		return 0, p.readErr
	}
	if p.reads > 0 {
		return 0, nil
	}
	p.reads++
	return copy(buf, p.response), nil
}

func (p *fakePort) Write(b []byte) (int, error) {
	if p.writeErr != nil {
		return 0, p.writeErr
	}
	return len(b), nil
}

func (p *fakePort) SetReadTimeout(time.Duration) error { return nil }
func (p *fakePort) ResetInputBuffer() error            { return nil }

func (p *fakePort) Close() error {
	p.closed = true
	return nil
}

// fakeOpener выдает порты с поведением, заданным по скоростям.
type fakeOpener struct {
	confirmAt map[int]bool
	openErrAt map[int]error
	readErrAt map[int]error
	onOpen    func(baud int)

	attempts []int
	opened   []*fakePort
}

func (o *fakeOpener) Open(name string, baud int) (ports.SerialPort, error) {
	o.attempts = append(o.attempts, baud)
	if o.onOpen != nil {
		o.onOpen(baud)
	}
	if err := o.openErrAt[baud]; err != nil {
		return nil, err
	}

	p := &fakePort{response: []byte{0xFF, 0x00, 0xFF}}
	if o.confirmAt[baud] {
		p.response = []byte("rst:0x1 (POWERON_RESET) ESP-ROM")
	}
	if err := o.readErrAt[baud]; err != nil {
		p.readErr = err
	}
	o.opened = append(o.opened, p)
	return p, nil
}

func (o *fakeOpener) allClosed() bool {
	for _, p := range o.opened {
		if !p.closed {
			return false
		}
	}
	return true
}

func newTestNegotiator(o *fakeOpener) *Negotiator {
	return NewNegotiator(o, storage.NewIniConfigStore(), logger.NewNop())
}

func makeProject(t *testing.T, baud string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.ini"),
		[]byte("[Settings]\nBaud_Rate = "+baud+"\n"), 0644))
	return dir
}

func projectBaud(t *testing.T, dir string) string {
	t.Helper()
	settings, err := storage.NewIniConfigStore().Load(dir)
	require.NoError(t, err)
	return settings.BaudRate
}

func TestNegotiator_Probe(t *testing.T) {
	t.Run("signature in response confirms", func(t *testing.T) {
		o := &fakeOpener{confirmAt: map[int]bool{115200: true}}
		n := newTestNegotiator(o)

		res := n.Probe("COM3", 115200)
		assert.Equal(t, models.ProbeConfirmed, res.Outcome)
		assert.True(t, res.Confirmed())
		assert.True(t, o.allClosed())
	})

	t.Run("garbage response rejects", func(t *testing.T) {
		o := &fakeOpener{}
		n := newTestNegotiator(o)

		res := n.Probe("COM3", 9600)
		assert.Equal(t, models.ProbeRejected, res.Outcome)
		assert.NoError(t, res.Err)
		assert.True(t, o.allClosed())
	})

	t.Run("open failure is device error", func(t *testing.T) {
		openErr := errors.New("access denied")
		o := &fakeOpener{openErrAt: map[int]error{9600: openErr}}
		n := newTestNegotiator(o)

		res := n.Probe("COM3", 9600)
		assert.Equal(t, models.ProbeDeviceError, res.Outcome)
		assert.ErrorIs(t, res.Err, openErr)
	})

	t.Run("read failure is device error and closes port", func(t *testing.T) {
		readErr := errors.New("device unplugged")
		o := &fakeOpener{readErrAt: map[int]error{9600: readErr}}
		n := newTestNegotiator(o)

		res := n.Probe("COM3", 9600)
		assert.Equal(t, models.ProbeDeviceError, res.Outcome)
		assert.ErrorIs(t, res.Err, readErr)
		assert.True(t, o.allClosed())
	})
}

func TestNegotiator_Sweep(t *testing.T) {
	t.Run("tries rates from highest to lowest", func(t *testing.T) {
		o := &fakeOpener{}
		n := newTestNegotiator(o)

		res, err := n.Sweep(context.Background(), "COM3", []int{9600, 115200, 57600})
		require.NoError(t, err)
		assert.Equal(t, models.SweepExhausted, res.State)
		assert.Equal(t, []int{115200, 57600, 9600}, o.attempts)
		assert.Len(t, res.Attempts, 3)
		assert.True(t, o.allClosed())
	})

	t.Run("stops at first confirmed rate", func(t *testing.T) {
		o := &fakeOpener{confirmAt: map[int]bool{57600: true}}
		n := newTestNegotiator(o)

		res, err := n.Sweep(context.Background(), "COM3", []int{115200, 57600, 9600})
		require.NoError(t, err)
		assert.Equal(t, models.SweepConfirmed, res.State)
		assert.Equal(t, 57600, res.BaudRate)
		assert.Equal(t, []int{115200, 57600}, o.attempts, "9600 must never be attempted")
		assert.NotEmpty(t, res.ID)
	})

	t.Run("empty rate list means full supported set", func(t *testing.T) {
		o := &fakeOpener{}
		n := newTestNegotiator(o)

		res, err := n.Sweep(context.Background(), "COM3", nil)
		require.NoError(t, err)
		assert.Equal(t, models.SweepExhausted, res.State)
		require.Len(t, o.attempts, len(models.SupportedBaudRates))
		assert.Equal(t, 2000000, o.attempts[0])
		assert.Equal(t, 50, o.attempts[len(o.attempts)-1])
	})

	t.Run("cancellation between probes aborts with closed port", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		o := &fakeOpener{onOpen: func(int) { cancel() }}
		n := newTestNegotiator(o)

		_, err := n.Sweep(ctx, "COM3", []int{115200, 57600, 9600})
		require.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, []int{115200}, o.attempts, "no probe after cancellation")
		assert.True(t, o.allClosed())
	})

	t.Run("already cancelled context probes nothing", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		o := &fakeOpener{}
		n := newTestNegotiator(o)

		_, err := n.Sweep(ctx, "COM3", nil)
		require.ErrorIs(t, err, context.Canceled)
		assert.Empty(t, o.attempts)
	})
}

func TestNegotiator_Negotiate(t *testing.T) {
	t.Run("known rate confirms without consent", func(t *testing.T) {
		o := &fakeOpener{confirmAt: map[int]bool{9600: true}}
		n := newTestNegotiator(o)
		dir := makeProject(t, "9600")

		asked := false
		rate, err := n.Negotiate(context.Background(), "COM3", 9600, dir,
			nil, func(models.ProbeResult) bool { asked = true; return true })
		require.NoError(t, err)
		assert.Equal(t, 9600, rate)
		assert.False(t, asked)
		assert.Equal(t, "9600", projectBaud(t, dir))
	})

	t.Run("sweep finds rate and persists it", func(t *testing.T) {
		o := &fakeOpener{confirmAt: map[int]bool{57600: true}}
		n := newTestNegotiator(o)
		dir := makeProject(t, "9600")

		var firstOutcome models.ProbeOutcome
		rate, err := n.Negotiate(context.Background(), "COM3", 9600, dir,
			[]int{115200, 57600, 9600}, func(r models.ProbeResult) bool {
				firstOutcome = r.Outcome
				return true
			})
		require.NoError(t, err)
		assert.Equal(t, 57600, rate)
		assert.Equal(t, models.ProbeRejected, firstOutcome)
		// первая попытка на известной скорости, затем перебор сверху вниз
		assert.Equal(t, []int{9600, 115200, 57600}, o.attempts)
		assert.Equal(t, "57600", projectBaud(t, dir))
	})

	t.Run("declined consent keeps known rate and config", func(t *testing.T) {
		o := &fakeOpener{}
		n := newTestNegotiator(o)
		dir := makeProject(t, "9600")

		rate, err := n.Negotiate(context.Background(), "COM3", 9600, dir,
			nil, func(models.ProbeResult) bool { return false })
		require.NoError(t, err)
		assert.Equal(t, 9600, rate)
		assert.Equal(t, []int{9600}, o.attempts)
		assert.Equal(t, "9600", projectBaud(t, dir))
	})

	t.Run("exhausted sweep is an error and config untouched", func(t *testing.T) {
		o := &fakeOpener{}
		n := newTestNegotiator(o)
		dir := makeProject(t, "9600")

		_, err := n.Negotiate(context.Background(), "COM3", 9600, dir,
			[]int{115200, 57600}, func(models.ProbeResult) bool { return true })
		require.ErrorIs(t, err, models.ErrNoWorkingRate)
		assert.Equal(t, "9600", projectBaud(t, dir))
	})

	t.Run("temporary session does not persist", func(t *testing.T) {
		o := &fakeOpener{confirmAt: map[int]bool{115200: true}}
		n := newTestNegotiator(o)

		rate, err := n.Negotiate(context.Background(), "COM3", 9600, "",
			[]int{115200}, func(models.ProbeResult) bool { return true })
		require.NoError(t, err)
		assert.Equal(t, 115200, rate)
	})
}

// tricklePort отдает по одному байту на чтение и никогда не замолкает.
// Запоминает таймауты, выставленные перед чтениями.
type tricklePort struct {
	delay    time.Duration
	timeouts []time.Duration
}

func (p *tricklePort) Read(buf []byte) (int, error) {
	time.Sleep(p.delay)
	buf[0] = 'x'
	return 1, nil
}

func (p *tricklePort) Write(b []byte) (int, error) { return len(b), nil }

func (p *tricklePort) SetReadTimeout(d time.Duration) error {
	p.timeouts = append(p.timeouts, d)
	return nil
}

func (p *tricklePort) ResetInputBuffer() error { return nil }
func (p *tricklePort) Close() error            { return nil }

type trickleOpener struct {
	port *tricklePort
}

func (o *trickleOpener) Open(string, int) (ports.SerialPort, error) { return o.port, nil }

func TestNegotiator_ProbeStaysWithinReadWindow(t *testing.T) {
	t.Run("slow endless stream ends with the window", func(t *testing.T) {
		port := &tricklePort{delay: 400 * time.Millisecond}
		n := NewNegotiator(&trickleOpener{port: port}, storage.NewIniConfigStore(), logger.NewNop())

		start := time.Now()
		result := n.Probe("COM3", 115200)
		elapsed := time.Since(start)

		assert.Equal(t, models.ProbeRejected, result.Outcome)
		assert.Less(t, elapsed, 2*probeTimeout)
		// байтов пришло меньше бюджета: остановило именно окно
		assert.Less(t, len(result.Response), readBudget)

		// таймаут порта ужимается до остатка окна перед каждым чтением
		require.GreaterOrEqual(t, len(port.timeouts), 3)
		for i, d := range port.timeouts {
			assert.LessOrEqual(t, d, probeTimeout)
			if i > 0 {
				assert.LessOrEqual(t, d, port.timeouts[i-1])
			}
		}
	})
}
