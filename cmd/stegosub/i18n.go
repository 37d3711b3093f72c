// Package main provides localization for the stegosub CLI.
package main

import (
	"github.com/ideamans/go-l10n"
)

func init() {
	// Register Japanese translations for CLI messages.
	l10n.Register("ja", l10n.LexiconMap{
		// Root command
		"Embed recoverable identity, timing and subtitle data in video pixels.": "復元可能な識別情報・タイミング・字幕データを動画ピクセルに埋め込みます。",

		// Embed command
		"Embed identity markers, timing and subtitles into a video.": "識別マーカー・タイミング・字幕を動画に埋め込み",

		// Extract command
		"Extract embedded metadata and subtitles from a video.": "埋め込まれたメタデータと字幕を動画から抽出",

		// Capacity command
		"Report the embedding capacity of a video or frame size.": "動画またはフレームサイズの埋め込み容量を表示",

		// Version command
		"Show version information.":   "バージョン情報を表示",
		"stegosub (Go) version %s":    "stegosub (Go版) バージョン %s",

		// Flags
		"Input video file path.":                                     "入力動画ファイルパス",
		"Output MP4 file path.":                                      "出力MP4ファイルパス",
		"Video identifier hashed into the corner markers.":           "コーナーマーカーにハッシュ化して埋め込む動画識別子",
		"Subtitle file (SRT or WebVTT) to embed.":                    "埋め込む字幕ファイル（SRTまたはWebVTT）",
		"YAML configuration file.":                                   "YAML設定ファイル",
		"Marker edge length in pixels (default: 20).":                "マーカーの一辺の長さ（ピクセル、デフォルト: 20）",
		"Marker distance from the frame edge in pixels (default: 60).": "フレーム端からマーカーまでの距離（ピクセル、デフォルト: 60）",
		"Acceptable bit errors per marker (default: 50).":            "マーカーあたりの許容ビット誤り数（デフォルト: 50）",
		"Rows of the top strip carrying the timing record (default: 5).": "タイミングレコードを格納する上部の行数（デフォルト: 5）",
		"Bottom band height as a percentage (1-50, default: 10).":    "下部バンドの高さ（パーセント、1-50、デフォルト: 10）",
		"Low bits used per channel (1-8, default: 2).":               "チャンネルごとに使用する下位ビット数（1-8、デフォルト: 2）",
		"Parallel stamping workers (0 = one per CPU).":               "並列スタンプワーカー数（0 = CPUごとに1つ）",
		"Video quality (CRF 0-63, 0 = lossless; lossy degrades embedded bits).": "動画品質（CRF 0-63、0 = 可逆、非可逆は埋め込みビットを劣化させます）",
		"Target bitrate in kbps (0 = encoder decides).":              "目標ビットレート（kbps、0 = エンコーダーに任せる）",
		"Do not remux the source audio track.":                       "元の音声トラックを含めない",
		"Output execution summary to file (Markdown format).":        "実行サマリーをファイルに出力（Markdown形式）",
		"Enable debug output.":                                       "デバッグ出力を有効化",
		"Directory for debug output.":                                "デバッグ出力のディレクトリ",
		"Log level (debug, info, warn, error).":                      "ログレベル（debug, info, warn, error）",
		"Suppress all log output.":                                   "全てのログ出力を抑制",
		"Output SRT file path (default: stdout).":                    "出力SRTファイルパス（デフォルト: 標準出力）",
		"Expected video identifier; mismatching markers are reported.": "期待される動画識別子（不一致のマーカーを報告）",
		"Rows of the top timing strip.":                              "上部タイミング領域の行数",
		"Bottom band height as a percentage.":                        "下部バンドの高さ（パーセント）",
		"Low bits used per channel.":                                 "チャンネルごとに使用する下位ビット数",
		"Video file to probe (MP4 preferred, ffprobe fallback).":     "調査する動画ファイル（MP4優先、ffprobeフォールバック）",
		"Frame width when no input file is given.":                   "入力ファイルがない場合のフレーム幅",
		"Frame height when no input file is given.":                  "入力ファイルがない場合のフレーム高さ",

		// Runtime messages
		"Embedding into %s (identity 0x%04X)...": "%s に埋め込み中（識別値 0x%04X）...",
		"Output saved to %s":                     "出力を %s に保存しました",
		"Interrupted, shutting down...":          "中断されました。シャットダウン中...",
		"Summary saved to %s":                    "サマリーを %s に保存しました",
		"Failed to write summary: %s":            "サマリーの書き込みに失敗しました: %s",

		// Extraction messages
		"Extracting from %s (%dx%d)...":                  "%s から抽出中（%dx%d）...",
		"Read %d frames, %d with unreadable timing":      "%d フレームを読み込み、%d フレームのタイミングが読めません",
		"Markers decoded: %d ok, %d corrupt":             "マーカーのデコード: 正常 %d、破損 %d",
		"Marker identity 0x%04X seen %d times":           "マーカー識別値 0x%04X を %d 回検出",
		"Identity 0x%04X does not match video ID %s (0x%04X)": "識別値 0x%04X は動画ID %s（0x%04X）と一致しません",
		"Recovered %d caption entries":                   "%d 件の字幕エントリを復元しました",
		"Subtitles saved to %s":                          "字幕を %s に保存しました",
		"Frame %d: undecodable caption payload: %s":      "フレーム %d: 字幕ペイロードを展開できません: %s",
		"Frame %d: malformed caption payload: %s":        "フレーム %d: 字幕ペイロードが不正です: %s",

		// Error messages
		"a video ID is required (--video-id or config file)":   "動画IDが必要です（--video-id または設定ファイル）",
		"an input file or --width and --height are required":   "入力ファイルまたは --width と --height が必要です",

		// Orchestrator messages
		"Starting pipeline":                          "パイプラインを開始",
		"Failed to probe video: %s":                  "動画の調査に失敗しました: %s",
		"Input video: %dx%d at %.2f fps":             "入力動画: %dx%d、%.2f fps",
		"Capacity precheck: %s":                      "容量の事前チェック: %s",
		"Decoding frames":                            "フレームをデコード中",
		"Failed to decode video: %s":                 "動画のデコードに失敗しました: %s",
		"Decoded %d frames":                          "%d フレームをデコードしました",
		"Preparing captions from %s":                 "%s から字幕を準備中",
		"Failed to prepare captions: %s":             "字幕の準備に失敗しました: %s",
		"Prepared %d caption entries, %d payload bytes": "%d 件の字幕エントリを準備（ペイロード %d バイト）",
		"Stamping %d frames":                         "%d フレームにスタンプ中",
		"Failed to stamp frames: %s":                 "フレームのスタンプに失敗しました: %s",
		"Stamping completed: %d frames carry a caption": "スタンプ完了: %d フレームに字幕を埋め込みました",
		"Encoding video with quality %d":             "品質 %d で動画をエンコード中",
		"Failed to encode video: %s":                 "動画のエンコードに失敗しました: %s",
		"Video encoded: %d bytes":                    "動画をエンコードしました: %d バイト",
		"Failed to write output: %s":                 "出力の書き込みに失敗しました: %s",
		"Pipeline completed successfully":            "パイプラインが正常に完了しました",

		// Summary content
		"Embedding Summary":     "埋め込みサマリー",
		"Generated":             "生成日時",
		"Source":                "入力",
		"Path":                  "パス",
		"Size":                  "サイズ",
		"Frame Rate":            "フレームレート",
		"Frames":                "フレーム数",
		"Identity":              "識別情報",
		"Video ID":              "動画ID",
		"Embedded Identity":     "埋め込み識別値",
		"Markers":               "マーカー",
		"Marker Size":           "マーカーサイズ",
		"margin":                "余白",
		"Corners Placed":        "配置したコーナー",
		"Corners Skipped":       "スキップしたコーナー",
		"Captions":              "字幕",
		"Subtitle File":         "字幕ファイル",
		"Entries":               "エントリ数",
		"Payload":               "ペイロード",
		"Frames with Captions":  "字幕付きフレーム数",
		"Frames Skipped":        "スキップしたフレーム数",
		"Band Capacity":         "バンド容量",
		"Output":                "出力",
		"Duration":              "再生時間",
		"File Size":             "ファイルサイズ",
		"Quality":               "品質",
		"Lossless":              "可逆",
		"Generated by stegosub": "生成: stegosub",
	})
}
