package runner

import "testing"

func TestAutopilotDecide(t *testing.T) {
	cfg := testConfig()
	pilot := NewAutopilot(&cfg)

	tests := []struct {
		name     string
		lane     int
		entities []Entity
		want     Intents
	}{
		{
			name: "clear road",
			want: 0,
		},
		{
			name:     "dodge toward center",
			lane:     -1,
			entities: []Entity{entity(cfg, KindObstacle, -1, 0, -10)},
			want:     Intents(0).With(IntentRight),
		},
		{
			name:     "dodge from center",
			entities: []Entity{entity(cfg, KindAlien, 0, 1.5, -10)},
			want:     Intents(0).With(IntentLeft),
		},
		{
			name: "boxed in jumps late",
			entities: []Entity{
				entity(cfg, KindObstacle, -1, 0, -5),
				entity(cfg, KindObstacle, 0, 0, -5),
				entity(cfg, KindObstacle, 1, 0, -5),
			},
			want: Intents(0).With(IntentJump),
		},
		{
			name: "boxed in waits",
			entities: []Entity{
				entity(cfg, KindObstacle, -1, 0, -20),
				entity(cfg, KindObstacle, 0, 0, -20),
				entity(cfg, KindObstacle, 1, 0, -20),
			},
			want: 0,
		},
		{
			name:     "chase gem",
			entities: []Entity{entity(cfg, KindGem, 2, 1, -15)},
			want:     Intents(0).With(IntentRight),
		},
		{
			name: "skip gem behind hazard",
			entities: []Entity{
				entity(cfg, KindGem, 1, 1, -15),
				entity(cfg, KindObstacle, 1, 0, -12),
			},
			want: 0,
		},
		{
			name: "ignore consumed hazard",
			entities: func() []Entity {
				e := entity(cfg, KindObstacle, 0, 0, -3)
				e.Active = false
				return []Entity{e}
			}(),
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap := Snapshot{Player: PlayerView{Lane: tt.lane}, Entities: tt.entities}
			if got := pilot.Decide(snap); got != tt.want {
				t.Errorf("Decide() = %b, expected %b", got, tt.want)
			}
		})
	}
}
