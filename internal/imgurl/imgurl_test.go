package imgurl

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const driveID = "1aBcDeFgHiJkLmNoPqRsTuVwXyZ012345"

func TestResolve_PassThrough(t *testing.T) {
	cfg := Config{}
	assert.Equal(t, "https://example.com/a.jpg", Resolve(cfg, "https://example.com/a.jpg"))
	assert.Equal(t, "data:image/png;base64,AAAA", Resolve(cfg, "data:image/png;base64,AAAA"))
	assert.Equal(t, "", Resolve(cfg, "   "))
}

func TestResolve_CloudinaryUntouched(t *testing.T) {
	u := "https://res.cloudinary.com/demo/image/upload/v1/shop/item.jpg"
	assert.Equal(t, u, Resolve(Config{}, u))
}

func TestResolve_DriveDirect(t *testing.T) {
	got := Resolve(Config{DriveMode: DriveDirect}, "https://drive.google.com/file/d/"+driveID+"/view")
	assert.Equal(t, "https://drive.google.com/uc?export=view&id="+driveID, got)
}

func TestResolve_DriveProxy(t *testing.T) {
	cfg := Config{DriveMode: DriveProxy, DriveURL: "https://script.example/exec"}
	got := Resolve(cfg, driveID)
	assert.Equal(t, "https://script.example/exec?img="+driveID, got)
}

func TestResolve_BareFilenameUsesAssetBase(t *testing.T) {
	cfg := Config{AssetBase: "./assets/img/"}
	assert.Equal(t, "./assets/img/thermometer.jpg", Resolve(cfg, "thermometer.jpg"))
	assert.Equal(t, "./assets/img/nested/a.png", Resolve(cfg, "/nested/a.png"))

	assert.Equal(t, "./assets/img/x.png", Resolve(Config{}, "x.png"), "default asset base")
}

func TestDriveID_Forms(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"query param", "https://drive.google.com/open?id=" + driveID, driveID},
		{"file path", "https://drive.google.com/file/d/" + driveID + "/view?usp=sharing", driveID},
		{"uc link", "https://drive.google.com/uc?export=view&id=" + driveID, driveID},
		{"bare id", driveID, driveID},
		{"short string is not an id", "thermometer.jpg", ""},
		{"absolute non-drive", "https://example.com/image.jpg", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, DriveID(tc.in))
		})
	}
}

func TestSized_InjectsTransforms(t *testing.T) {
	u := "https://res.cloudinary.com/demo/image/upload/v1/shop/item.jpg"
	assert.Equal(t,
		"https://res.cloudinary.com/demo/image/upload/f_auto,q_auto,w_480/v1/shop/item.jpg",
		Sized(u, 480))
}

func TestSized_KeepsExistingTransforms(t *testing.T) {
	u := "https://res.cloudinary.com/demo/image/upload/c_fill,h_200/item.jpg"
	assert.Equal(t,
		"https://res.cloudinary.com/demo/image/upload/f_auto,q_auto,w_320/c_fill,h_200/item.jpg",
		Sized(u, 320))
}

func TestSized_NonCloudinaryUnchanged(t *testing.T) {
	assert.Equal(t, "https://example.com/a.jpg", Sized("https://example.com/a.jpg", 480))
}

func TestSrcSet(t *testing.T) {
	u := "https://res.cloudinary.com/demo/image/upload/item.jpg"
	set := SrcSet(u)
	assert.Len(t, set, 3)
	assert.Contains(t, set[0], "w_320")
	assert.Contains(t, set[2], "w_640")

	assert.Equal(t, []string{"plain.jpg"}, SrcSet("plain.jpg"))
}
