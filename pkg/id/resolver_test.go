package id

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	logpkg "github.com/rzbill/flake/pkg/log"
)

func staticInterfaces(ifaces ...Interface) func() ([]Interface, error) {
	return func() ([]Interface, error) { return ifaces, nil }
}

func bufLogger(buf *bytes.Buffer) logpkg.Logger {
	return logpkg.NewLogger(
		logpkg.WithFormatter(&logpkg.TextFormatter{}),
		logpkg.WithOutput(logpkg.NewWriterOutput(buf)),
	)
}

func TestHostResolverDatacenterFromMAC(t *testing.T) {
	r := NewHostResolver(WithInterfaces(staticInterfaces(
		Interface{Name: "lo", HardwareAddr: "", Flags: []string{"up", "loopback"}},
		Interface{Name: "eth1", HardwareAddr: "11:22:33:44:55:66", Flags: []string{"broadcast"}},
		Interface{Name: "eth0", HardwareAddr: "aa:bb:cc:dd:ee:ff", Flags: []string{"up", "broadcast"}},
	)))
	// ((0xff | 0xee<<8) >> 6) % 32 = 955 % 32
	assert.Equal(t, int64(27), r.DatacenterID(MaxDatacenterID))
}

func TestHostResolverFallbacks(t *testing.T) {
	tests := []struct {
		name  string
		list  func() ([]Interface, error)
		max   int64
		want  int64
		cause error
	}{
		{
			name:  "no interfaces",
			list:  staticInterfaces(),
			max:   MaxDatacenterID,
			want:  1,
			cause: ErrNoHardwareAddr,
		},
		{
			name: "only zero mac",
			list: staticInterfaces(Interface{Name: "tun0", HardwareAddr: "00:00:00:00:00:00", Flags: []string{"up"}}),
			max:  MaxDatacenterID,
			want: 1,
		},
		{
			name: "enumeration fails",
			list: func() ([]Interface, error) { return nil, errors.New("permission denied") },
			max:  MaxDatacenterID,
			want: 1,
		},
		{
			name:  "fallback clamped",
			list:  staticInterfaces(),
			max:   0,
			want:  0,
			cause: ErrNoHardwareAddr,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			r := NewHostResolver(WithInterfaces(tt.list), WithResolverLogger(bufLogger(&buf)))
			assert.Equal(t, tt.want, r.DatacenterID(tt.max))
			assert.Contains(t, buf.String(), "node identity fallback")
			assert.Contains(t, buf.String(), "component=node-resolver")
			if tt.cause != nil {
				assert.Contains(t, buf.String(), tt.cause.Error())
			}
		})
	}
}

func TestHostResolverWorkerID(t *testing.T) {
	r := NewHostResolver(WithPID(func() int { return 4242 }))
	a := r.WorkerID(5, MaxWorkerID)
	b := r.WorkerID(5, MaxWorkerID)
	assert.Equal(t, a, b)
	assert.GreaterOrEqual(t, a, int64(0))
	assert.LessOrEqual(t, a, int64(MaxWorkerID))

	var buf bytes.Buffer
	bad := NewHostResolver(WithPID(func() int { return 0 }), WithResolverLogger(bufLogger(&buf)))
	w := bad.WorkerID(5, MaxWorkerID)
	assert.LessOrEqual(t, w, int64(MaxWorkerID))
	assert.Contains(t, buf.String(), "invalid process id")
}

func TestStaticResolverClamps(t *testing.T) {
	r := StaticResolver{Datacenter: 40, Worker: -3}
	assert.Equal(t, int64(MaxDatacenterID), r.DatacenterID(MaxDatacenterID))
	assert.Equal(t, int64(0), r.WorkerID(0, MaxWorkerID))
}

func TestNewAutoGeneratorUsesResolver(t *testing.T) {
	ctrl := gomock.NewController(t)
	r := NewMockResolver(ctrl)
	gomock.InOrder(
		r.EXPECT().DatacenterID(int64(MaxDatacenterID)).Return(int64(7)),
		r.EXPECT().WorkerID(int64(7), int64(MaxWorkerID)).Return(int64(9)),
	)

	g, err := NewAutoGenerator(r, WithClock(NewManualClock(DefaultEpochMs+1)))
	require.NoError(t, err)
	assert.Equal(t, int64(7), g.DatacenterID())
	assert.Equal(t, int64(9), g.WorkerID())
}

func TestNewAutoGeneratorValidatesResolverOutput(t *testing.T) {
	ctrl := gomock.NewController(t)
	r := NewMockResolver(ctrl)
	r.EXPECT().DatacenterID(gomock.Any()).Return(int64(3))
	r.EXPECT().WorkerID(int64(3), gomock.Any()).Return(int64(64))

	_, err := NewAutoGenerator(r)
	require.ErrorIs(t, err, ErrInvalidConfig)
}

func TestNewAutoGeneratorHostDefault(t *testing.T) {
	g, err := NewAutoGenerator(nil)
	require.NoError(t, err)
	assert.LessOrEqual(t, g.DatacenterID(), int64(MaxDatacenterID))
	assert.LessOrEqual(t, g.WorkerID(), int64(MaxWorkerID))
	_, err = g.NextID()
	require.NoError(t, err)
}
