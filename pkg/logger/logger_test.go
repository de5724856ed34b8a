package logger

import (
	"bytes"
	"strings"
	"sync"
	"testing"
)

func TestEffectiveLevelHierarchy(t *testing.T) {
	Configure("text", LogLevelWarn, map[string]LogLevel{
		Resolver: LogLevelDebug,
	})
	t.Cleanup(func() { Configure("text", LogLevelInfo, nil) })

	tests := []struct {
		component string
		want      LogLevel
	}{
		{Resolver, LogLevelDebug},
		{ResolverClassify, LogLevelDebug},
		{Inventory, LogLevelWarn},
		{InventorySQLite, LogLevelWarn},
	}

	for _, tt := range tests {
		got := levelToLogLevel(getEffectiveLevel(tt.component))
		if got != tt.want {
			t.Errorf("getEffectiveLevel(%q) = %s, want %s", tt.component, got, tt.want)
		}
	}
}

func TestTextHandlerOutput(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	Configure("text", LogLevelInfo, nil)
	t.Cleanup(func() { SetOutput(&bytes.Buffer{}) })

	log := WithHost(Get(Resolver), HostAttrs{Hostname: "controller-0", Personality: "controller"})
	log.Debug("hidden")
	log.Info("resolved", "resources", 4)

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("debug record written at info level: %q", out)
	}
	for _, want := range []string{"[resolver]", "resolved", "host=controller-0", "personality=controller", "resources=4"} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q missing %q", out, want)
		}
	}
	if strings.Index(out, "host=") > strings.Index(out, "resources=") {
		t.Errorf("scoped attrs should precede record attrs: %q", out)
	}
}

func TestSetComponentLevel(t *testing.T) {
	Configure("json", LogLevelInfo, nil)
	t.Cleanup(func() { Configure("text", LogLevelInfo, nil) })

	SetComponentLevel(Discover, LogLevelError)
	if got := GetComponentLevels()[Discover]; got != LogLevelError {
		t.Errorf("GetComponentLevels()[%q] = %s, want error", Discover, got)
	}

	ClearComponentLevel(Discover)
	if _, ok := GetComponentLevels()[Discover]; ok {
		t.Errorf("component level for %q not cleared", Discover)
	}
	if got := GetDefaultLevel(); got != LogLevelInfo {
		t.Errorf("GetDefaultLevel() = %s, want info", got)
	}
}

func TestConfigureConcurrentWithGet(t *testing.T) {
	t.Cleanup(func() { Configure("text", LogLevelInfo, nil) })

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				Get(Resolver).Debug("resolving")
			}
		}()
		go func() {
			defer wg.Done()
			for j := 0; j < 20; j++ {
				Configure("text", LogLevelWarn, map[string]LogLevel{Resolver: LogLevelError})
			}
		}()
	}
	wg.Wait()

	if got := levelToLogLevel(getEffectiveLevel(Resolver)); got != LogLevelError {
		t.Errorf("getEffectiveLevel(%q) = %s, want %s", Resolver, got, LogLevelError)
	}
}
